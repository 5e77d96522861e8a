package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"electora/contexts/election-core/voting-engine/adapters/memory"
	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

func newSimulateFixture(memberCount int) (*memory.Store, SimulateUseCase) {
	store := memory.NewStore(nil)
	store.SetCycle(ports.CycleRef{CycleID: "cycle-2024", Year: 2024, IsActive: true})
	store.SetPosition(ports.PositionRef{PositionID: "pos-president", CycleID: "cycle-2024", Name: "President"})
	store.SetPosition(ports.PositionRef{PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Secretary"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-a", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Ada Obi"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-b", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Bola Ade"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-c", PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Chidi Eze"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-d", PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Dayo Ojo"})
	for i := 0; i < memberCount; i++ {
		store.SetVoter(ports.VoterRef{VoterID: fmt.Sprintf("voter-%03d", i), Role: "member"})
	}
	return store, SimulateUseCase{
		Votes:   store,
		Catalog: store,
		Cycles:  store,
		Voters:  store,
		Clock:   store,
		IDGen:   store,
		Rand:    store,
	}
}

func countByCandidate(t *testing.T, store *memory.Store, cycleID string) map[string]int {
	t.Helper()
	votes, err := store.ListVotesByCycle(context.Background(), cycleID)
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	counts := map[string]int{}
	for _, vote := range votes {
		counts[vote.CandidateID]++
	}
	return counts
}

func assertLedgerUnique(t *testing.T, store *memory.Store, cycleID string) {
	t.Helper()
	votes, err := store.ListVotesByCycle(context.Background(), cycleID)
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	seen := map[entities.BallotKey]bool{}
	for _, vote := range votes {
		key := vote.BallotKey()
		if seen[key] {
			t.Fatalf("duplicate ballot key in ledger: %+v", key)
		}
		seen[key] = true
	}
}

func TestSimulateSpendsUnusedVotersTowardTargets(t *testing.T) {
	store, uc := newSimulateFixture(10)

	report, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-a": 5, "cand-c": 3},
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	counts := countByCandidate(t, store, "cycle-2024")
	if counts["cand-a"] < 5 {
		t.Fatalf("cand-a target not met: got %d", counts["cand-a"])
	}
	if counts["cand-c"] < 3 {
		t.Fatalf("cand-c target not met: got %d", counts["cand-c"])
	}
	if len(report.Unmet) != 0 {
		t.Fatalf("expected no unmet targets, got %v", report.Unmet)
	}
	// Each spent voter casts one full ballot: one vote per position.
	if report.VotesCreated != report.VotersSpent*2 {
		t.Fatalf("expected %d votes for %d voters, got %d",
			report.VotersSpent*2, report.VotersSpent, report.VotesCreated)
	}
	assertLedgerUnique(t, store, "cycle-2024")
}

func TestSimulateRepointsWhenVotersExhausted(t *testing.T) {
	store, uc := newSimulateFixture(4)

	// Burn every member on cand-b so strategy (a) has nobody left.
	first, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-b": 4},
	})
	if err != nil {
		t.Fatalf("seed simulate failed: %v", err)
	}
	if first.VotersSpent != 4 {
		t.Fatalf("expected all 4 voters spent, got %d", first.VotersSpent)
	}

	second, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-a": 3},
	})
	if err != nil {
		t.Fatalf("repoint simulate failed: %v", err)
	}
	if second.VotesCreated != 0 {
		t.Fatalf("expected no new votes with voters exhausted, got %d", second.VotesCreated)
	}
	if second.VotesRepointed != 3 {
		t.Fatalf("expected 3 repointed votes, got %d", second.VotesRepointed)
	}

	counts := countByCandidate(t, store, "cycle-2024")
	if counts["cand-a"] != 3 {
		t.Fatalf("cand-a expected 3 votes after repoint, got %d", counts["cand-a"])
	}
	assertLedgerUnique(t, store, "cycle-2024")
}

func TestSimulateDoesNotDrainDonorsBelowTheirTarget(t *testing.T) {
	store, uc := newSimulateFixture(6)

	report, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-a": 4, "cand-b": 2},
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	counts := countByCandidate(t, store, "cycle-2024")
	if counts["cand-a"] < 4 || counts["cand-b"] < 2 {
		t.Fatalf("targets not met: %v (report %+v)", counts, report)
	}
	assertLedgerUnique(t, store, "cycle-2024")
}

func TestSimulateReportsUnmetWhenNothingLeftToSpend(t *testing.T) {
	store, uc := newSimulateFixture(2)

	report, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-a": 10},
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	counts := countByCandidate(t, store, "cycle-2024")
	if counts["cand-a"] != 2 {
		t.Fatalf("expected 2 votes from 2 voters, got %d", counts["cand-a"])
	}
	if report.Unmet["cand-a"] != 8 {
		t.Fatalf("expected unmet shortfall of 8, got %v", report.Unmet)
	}
	assertLedgerUnique(t, store, "cycle-2024")
}

func TestSimulateRejectsForeignTargetCandidate(t *testing.T) {
	_, uc := newSimulateFixture(2)
	_, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-2024",
		Targets: map[string]int{"cand-elsewhere": 1},
	})
	if !errors.Is(err, domainerrors.ErrUnknownTargetCandidate) {
		t.Fatalf("expected ErrUnknownTargetCandidate, got %v", err)
	}
}

func TestSimulateUnknownCycle(t *testing.T) {
	_, uc := newSimulateFixture(2)
	_, err := uc.Simulate(context.Background(), SimulateCommand{
		CycleID: "cycle-missing",
		Targets: map[string]int{"cand-a": 1},
	})
	if !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
}
