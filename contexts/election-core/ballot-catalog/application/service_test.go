package application

import (
	"context"
	"errors"
	"testing"

	"electora/contexts/election-core/ballot-catalog/adapters/memory"
	"electora/contexts/election-core/ballot-catalog/domain/entities"
	domainerrors "electora/contexts/election-core/ballot-catalog/domain/errors"
)

func newFixture(t *testing.T) (*memory.Store, Service, entities.Position) {
	t.Helper()
	store := memory.NewStore()
	store.SetCycle("cycle-2024")
	svc := Service{Repo: store, Cycles: store, Clock: store, IDGen: store}
	position, err := svc.CreatePosition(context.Background(), CreatePositionInput{
		CycleID: "cycle-2024",
		Name:    "President",
	})
	if err != nil {
		t.Fatalf("seed position failed: %v", err)
	}
	return store, svc, position
}

func TestCreatePositionUnknownCycle(t *testing.T) {
	_, svc, _ := newFixture(t)
	_, err := svc.CreatePosition(context.Background(), CreatePositionInput{
		CycleID: "cycle-missing",
		Name:    "Treasurer",
	})
	if !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
}

func TestCreatePositionValidatesInput(t *testing.T) {
	_, svc, _ := newFixture(t)
	_, err := svc.CreatePosition(context.Background(), CreatePositionInput{CycleID: "cycle-2024"})
	if !errors.Is(err, domainerrors.ErrInvalidBallotInput) {
		t.Fatalf("expected ErrInvalidBallotInput, got %v", err)
	}
}

func TestCreateCandidateInheritsPositionCycle(t *testing.T) {
	_, svc, position := newFixture(t)
	candidate, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: position.PositionID,
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}
	if candidate.CycleID != position.CycleID {
		t.Fatalf("candidate cycle %q must match position cycle %q", candidate.CycleID, position.CycleID)
	}
	if candidate.FullName() != "Ada Obi" {
		t.Fatalf("unexpected full name %q", candidate.FullName())
	}
}

func TestCreateCandidateRejectsCycleMismatch(t *testing.T) {
	_, svc, position := newFixture(t)
	_, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: position.PositionID,
		CycleID:    "cycle-2023",
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if !errors.Is(err, domainerrors.ErrCycleMismatch) {
		t.Fatalf("expected ErrCycleMismatch, got %v", err)
	}
}

func TestCreateCandidateUnknownPosition(t *testing.T) {
	_, svc, _ := newFixture(t)
	_, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: "pos-missing",
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if !errors.Is(err, domainerrors.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestDeleteCandidateRefusedWhenVotesExist(t *testing.T) {
	store, svc, position := newFixture(t)
	candidate, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: position.PositionID,
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}
	store.AddVoteRefs(position.PositionID, candidate.CandidateID, 1)

	if err := svc.DeleteCandidate(context.Background(), candidate.CandidateID); !errors.Is(err, domainerrors.ErrBallotInUse) {
		t.Fatalf("expected ErrBallotInUse, got %v", err)
	}
	if err := svc.DeletePosition(context.Background(), position.PositionID); !errors.Is(err, domainerrors.ErrBallotInUse) {
		t.Fatalf("expected ErrBallotInUse for position, got %v", err)
	}
}

func TestDeletePositionCascadesCandidates(t *testing.T) {
	_, svc, position := newFixture(t)
	candidate, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: position.PositionID,
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}

	if err := svc.DeletePosition(context.Background(), position.PositionID); err != nil {
		t.Fatalf("delete position failed: %v", err)
	}
	if _, err := svc.GetCandidate(context.Background(), candidate.CandidateID); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate gone with position, got %v", err)
	}
}

func TestUpdateCandidateRejectsCrossCycleMove(t *testing.T) {
	_, svc, position := newFixture(t)
	candidate, err := svc.CreateCandidate(context.Background(), CreateCandidateInput{
		PositionID: position.PositionID,
		FirstName:  "Ada",
		LastName:   "Obi",
	})
	if err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}

	store := svc.Repo.(*memory.Store)
	store.SetCycle("cycle-2025")
	other, err := svc.CreatePosition(context.Background(), CreatePositionInput{
		CycleID: "cycle-2025",
		Name:    "Secretary",
	})
	if err != nil {
		t.Fatalf("seed other position failed: %v", err)
	}

	_, err = svc.UpdateCandidate(context.Background(), candidate.CandidateID, CreateCandidateInput{
		PositionID: other.PositionID,
	})
	if !errors.Is(err, domainerrors.ErrCycleMismatch) {
		t.Fatalf("expected ErrCycleMismatch on cross-cycle move, got %v", err)
	}
}
