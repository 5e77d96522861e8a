package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"electora/contexts/election-core/voting-engine/adapters/memory"
	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

func newResultsFixture() (*memory.Store, ResultsUseCase) {
	store := memory.NewStore(nil)
	store.SetCycle(ports.CycleRef{CycleID: "cycle-2024", Year: 2024, IsActive: true})
	store.SetPosition(ports.PositionRef{PositionID: "pos-president", CycleID: "cycle-2024", Name: "President"})
	store.SetPosition(ports.PositionRef{PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Secretary"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-a", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Ada Obi"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-b", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Bola Ade"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-c", PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Chidi Eze"})
	return store, ResultsUseCase{Votes: store, Catalog: store, Cycles: store}
}

func mustVote(t *testing.T, store *memory.Store, voterID, candidateID, positionID string) {
	t.Helper()
	now := time.Now().UTC()
	err := store.InsertVote(context.Background(), entities.Vote{
		VoteID:      fmt.Sprintf("vote-%s-%s", voterID, positionID),
		VoterID:     voterID,
		CandidateID: candidateID,
		PositionID:  positionID,
		CycleID:     "cycle-2024",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("seed vote for %s: %v", voterID, err)
	}
}

func TestTallyIncludesZeroCountCandidates(t *testing.T) {
	store, uc := newResultsFixture()
	mustVote(t, store, "voter-1", "cand-a", "pos-president")

	rows, err := uc.Tally(context.Background(), "cycle-2024")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a row per candidate, got %d", len(rows))
	}
	byCandidate := map[string]entities.TallyRow{}
	total := 0
	for _, row := range rows {
		byCandidate[row.CandidateID] = row
		total += row.Votes
	}
	if byCandidate["cand-a"].Votes != 1 || byCandidate["cand-b"].Votes != 0 {
		t.Fatalf("unexpected president counts: a=%d b=%d",
			byCandidate["cand-a"].Votes, byCandidate["cand-b"].Votes)
	}
	if total != 1 {
		t.Fatalf("tally counts must sum to ledger rows, got %d", total)
	}
}

func TestTallyOrdering(t *testing.T) {
	store, uc := newResultsFixture()
	mustVote(t, store, "voter-1", "cand-b", "pos-president")
	mustVote(t, store, "voter-2", "cand-b", "pos-president")
	mustVote(t, store, "voter-3", "cand-a", "pos-president")

	rows, err := uc.Tally(context.Background(), "cycle-2024")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	// Position ascending, then votes descending, then candidate ID ascending.
	want := []string{"cand-b", "cand-a", "cand-c"}
	for i, row := range rows {
		if row.CandidateID != want[i] {
			t.Fatalf("row %d: expected %s, got %s", i, want[i], row.CandidateID)
		}
	}
}

func TestTallyUnknownCycle(t *testing.T) {
	_, uc := newResultsFixture()
	_, err := uc.Tally(context.Background(), "cycle-missing")
	if !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
}

func TestWinnersPicksMaxCount(t *testing.T) {
	store, uc := newResultsFixture()
	mustVote(t, store, "voter-1", "cand-a", "pos-president")
	mustVote(t, store, "voter-2", "cand-a", "pos-president")
	mustVote(t, store, "voter-3", "cand-b", "pos-president")
	mustVote(t, store, "voter-1", "cand-c", "pos-secretary")

	results, err := uc.Winners(context.Background(), "cycle-2024")
	if err != nil {
		t.Fatalf("winners failed: %v", err)
	}
	byPosition := map[string]entities.PositionResult{}
	for _, result := range results {
		byPosition[result.PositionID] = result
	}
	president := byPosition["pos-president"]
	if president.Winner == nil || president.Winner.CandidateID != "cand-a" {
		t.Fatalf("expected cand-a to win president, got %+v", president.Winner)
	}
	if president.Winner.Votes != 2 || president.TotalVotes != 3 {
		t.Fatalf("unexpected president totals: %+v", president)
	}
	secretary := byPosition["pos-secretary"]
	if secretary.Winner == nil || secretary.Winner.CandidateID != "cand-c" {
		t.Fatalf("expected cand-c to win secretary, got %+v", secretary.Winner)
	}
}

func TestWinnersTieBreaksOnCandidateID(t *testing.T) {
	store, uc := newResultsFixture()
	mustVote(t, store, "voter-1", "cand-a", "pos-president")
	mustVote(t, store, "voter-2", "cand-b", "pos-president")

	results, err := uc.Winners(context.Background(), "cycle-2024")
	if err != nil {
		t.Fatalf("winners failed: %v", err)
	}
	for _, result := range results {
		if result.PositionID != "pos-president" {
			continue
		}
		if result.Winner == nil || result.Winner.CandidateID != "cand-a" {
			t.Fatalf("tie must resolve to the lowest candidate ID, got %+v", result.Winner)
		}
		return
	}
	t.Fatal("president position missing from results")
}

func TestWinnersZeroVotePositionHasNoWinner(t *testing.T) {
	store, uc := newResultsFixture()
	mustVote(t, store, "voter-1", "cand-a", "pos-president")

	results, err := uc.Winners(context.Background(), "cycle-2024")
	if err != nil {
		t.Fatalf("winners failed: %v", err)
	}
	for _, result := range results {
		if result.PositionID != "pos-secretary" {
			continue
		}
		if result.Winner != nil {
			t.Fatalf("position without votes must have no winner, got %+v", result.Winner)
		}
		if result.TotalVotes != 0 {
			t.Fatalf("expected zero total votes, got %d", result.TotalVotes)
		}
		return
	}
	t.Fatal("secretary position missing from results")
}

func TestWinnersUnknownCycle(t *testing.T) {
	_, uc := newResultsFixture()
	_, err := uc.Winners(context.Background(), "cycle-missing")
	if !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
}

func TestHasVoterCompletedCycle(t *testing.T) {
	store, uc := newResultsFixture()

	completed, err := uc.HasVoterCompletedCycle(context.Background(), "voter-1", "cycle-2024")
	if err != nil {
		t.Fatalf("eligibility check failed: %v", err)
	}
	if completed {
		t.Fatal("voter with no votes must not be complete")
	}

	mustVote(t, store, "voter-1", "cand-a", "pos-president")
	completed, err = uc.HasVoterCompletedCycle(context.Background(), "voter-1", "cycle-2024")
	if err != nil {
		t.Fatalf("eligibility check failed: %v", err)
	}
	if completed {
		t.Fatal("voter with one of two positions must not be complete")
	}

	mustVote(t, store, "voter-1", "cand-c", "pos-secretary")
	completed, err = uc.HasVoterCompletedCycle(context.Background(), "voter-1", "cycle-2024")
	if err != nil {
		t.Fatalf("eligibility check failed: %v", err)
	}
	if !completed {
		t.Fatal("voter with all positions voted must be complete")
	}
}

func TestHasVoterCompletedCycleUnknownCycle(t *testing.T) {
	_, uc := newResultsFixture()
	completed, err := uc.HasVoterCompletedCycle(context.Background(), "voter-1", "cycle-missing")
	if !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	if completed {
		t.Fatal("unknown cycle must not report completion")
	}
}

func TestHasVoterCompletedCycleValidatesInput(t *testing.T) {
	_, uc := newResultsFixture()
	if _, err := uc.HasVoterCompletedCycle(context.Background(), "", "cycle-2024"); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput, got %v", err)
	}
}
