package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/cycle-registry/domain/entities"
	domainerrors "electora/contexts/election-core/cycle-registry/domain/errors"
	"electora/contexts/election-core/cycle-registry/ports"
)

const (
	minCycleYear = 2000
	maxCycleYear = 2200
)

type Service struct {
	Repo   ports.CycleRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CycleInput is the caller-supplied part of a cycle: the year label and the
// voting window it covers.
type CycleInput struct {
	Year      int
	StartDate time.Time
	EndDate   time.Time
}

func (s Service) CreateCycle(ctx context.Context, input CycleInput) (entities.VotingCycle, error) {
	if err := validateCycleInput(input); err != nil {
		return entities.VotingCycle{}, err
	}
	cycleID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.VotingCycle{}, err
	}
	now := s.now()
	cycle := entities.VotingCycle{
		CycleID:   cycleID,
		Year:      input.Year,
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateCycle(ctx, cycle); err != nil {
		return entities.VotingCycle{}, err
	}
	ResolveLogger(s.Logger).Info("voting cycle created",
		"event", "voting_cycle_created",
		"module", "election-core/cycle-registry",
		"layer", "application",
		"cycle_id", cycle.CycleID,
		"year", cycle.Year,
	)
	return cycle, nil
}

func (s Service) GetCycle(ctx context.Context, cycleID string) (entities.VotingCycle, error) {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return entities.VotingCycle{}, domainerrors.ErrInvalidCycleInput
	}
	return s.Repo.GetCycle(ctx, cycleID)
}

func (s Service) GetActiveCycle(ctx context.Context) (entities.VotingCycle, error) {
	return s.Repo.GetActiveCycle(ctx)
}

func (s Service) ListCycles(ctx context.Context) ([]entities.VotingCycle, error) {
	return s.Repo.ListCycles(ctx)
}

func (s Service) UpdateCycle(ctx context.Context, cycleID string, input CycleInput) (entities.VotingCycle, error) {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return entities.VotingCycle{}, domainerrors.ErrInvalidCycleInput
	}
	if err := validateCycleInput(input); err != nil {
		return entities.VotingCycle{}, err
	}
	return s.Repo.UpdateCycle(ctx, cycleID, input.Year, input.StartDate.UTC(), input.EndDate.UTC(), s.now())
}

func validateCycleInput(input CycleInput) error {
	if input.Year < minCycleYear || input.Year > maxCycleYear {
		return domainerrors.ErrInvalidCycleInput
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || !input.EndDate.After(input.StartDate) {
		return domainerrors.ErrInvalidCycleInput
	}
	return nil
}

// ActivateCycle makes cycleID the single open window. The swap happens inside
// the repository so a failed activation leaves the previous cycle active.
func (s Service) ActivateCycle(ctx context.Context, cycleID string) (entities.VotingCycle, error) {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return entities.VotingCycle{}, domainerrors.ErrInvalidCycleInput
	}
	cycle, err := s.Repo.SetActiveCycle(ctx, cycleID, s.now())
	if err != nil {
		return entities.VotingCycle{}, err
	}
	ResolveLogger(s.Logger).Info("voting cycle activated",
		"event", "voting_cycle_activated",
		"module", "election-core/cycle-registry",
		"layer", "application",
		"cycle_id", cycle.CycleID,
		"year", cycle.Year,
	)
	return cycle, nil
}

func (s Service) DeleteCycle(ctx context.Context, cycleID string) error {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return domainerrors.ErrInvalidCycleInput
	}
	if err := s.Repo.DeleteCycle(ctx, cycleID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("voting cycle deleted",
		"event", "voting_cycle_deleted",
		"module", "election-core/cycle-registry",
		"layer", "application",
		"cycle_id", cycleID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
