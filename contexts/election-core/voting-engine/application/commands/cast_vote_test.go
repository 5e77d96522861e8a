package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"electora/contexts/election-core/voting-engine/adapters/memory"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

func newCastFixture() (*memory.Store, CastVoteUseCase) {
	store := memory.NewStore(nil)
	store.SetCycle(ports.CycleRef{CycleID: "cycle-2024", Year: 2024, IsActive: true})
	store.SetCycle(ports.CycleRef{CycleID: "cycle-2023", Year: 2023, IsActive: false})
	store.SetPosition(ports.PositionRef{PositionID: "pos-president", CycleID: "cycle-2024", Name: "President"})
	store.SetPosition(ports.PositionRef{PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Secretary"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-a", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Ada Obi"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-b", PositionID: "pos-president", CycleID: "cycle-2024", Name: "Bola Ade"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-c", PositionID: "pos-secretary", CycleID: "cycle-2024", Name: "Chidi Eze"})
	store.SetCandidate(ports.CandidateRef{CandidateID: "cand-old", PositionID: "pos-old", CycleID: "cycle-2023", Name: "Old Guard"})
	store.SetVoter(ports.VoterRef{VoterID: "voter-1", Role: "member"})
	store.SetVoter(ports.VoterRef{VoterID: "admin-1", Role: "admin"})
	return store, CastVoteUseCase{
		Votes:   store,
		Catalog: store,
		Cycles:  store,
		Voters:  store,
		Clock:   store,
		IDGen:   store,
	}
}

func TestCastVoteRejectsNonMember(t *testing.T) {
	_, uc := newCastFixture()
	_, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "admin-1", CandidateID: "cand-a"})
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
}

func TestCastVoteUnknownCandidate(t *testing.T) {
	_, uc := newCastFixture()
	_, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-missing"})
	if !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestCastVoteInactiveCycleIsClosed(t *testing.T) {
	store, uc := newCastFixture()
	_, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-old"})
	if !errors.Is(err, domainerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
	votes, err := store.ListVotesByCycle(context.Background(), "cycle-2023")
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("expected no ledger row after rejected vote, got %d", len(votes))
	}
}

func TestCastVoteSecondVoteSamePositionFails(t *testing.T) {
	_, uc := newCastFixture()
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-a"}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	_, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-b"})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted for second vote in same position, got %v", err)
	}
}

func TestCastVoteDifferentPositionsSameCycle(t *testing.T) {
	store, uc := newCastFixture()
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-a"}); err != nil {
		t.Fatalf("president vote failed: %v", err)
	}
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", CandidateID: "cand-c"}); err != nil {
		t.Fatalf("secretary vote failed: %v", err)
	}
	votes, err := store.ListVotesByVoter(context.Background(), "voter-1", "cycle-2024")
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("expected 2 votes across positions, got %d", len(votes))
	}
}

// Two concurrent casts for the same voter and position, different candidates:
// exactly one must land, the loser must see ErrAlreadyVoted. The memory store
// enforces the same ballot-key constraint the postgres unique index does.
func TestCastVoteConcurrentDuplicateRace(t *testing.T) {
	store, uc := newCastFixture()

	var wg sync.WaitGroup
	results := make([]error, 2)
	candidates := []string{"cand-a", "cand-b"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = uc.CastVote(context.Background(), CastVoteCommand{
				VoterID:     "voter-1",
				CandidateID: candidates[slot],
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	duplicates := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
			duplicates++
		default:
			t.Fatalf("unexpected error from concurrent cast: %v", err)
		}
	}
	if succeeded != 1 || duplicates != 1 {
		t.Fatalf("expected exactly one success and one ErrAlreadyVoted, got %d/%d", succeeded, duplicates)
	}

	votes, err := store.ListVotesByVoter(context.Background(), "voter-1", "cycle-2024")
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected a single ledger row after the race, got %d", len(votes))
	}
}

func TestCastVoteValidatesInput(t *testing.T) {
	_, uc := newCastFixture()
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{}); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput, got %v", err)
	}
}
