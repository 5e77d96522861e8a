package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/ballot-catalog/domain/entities"
	domainerrors "electora/contexts/election-core/ballot-catalog/domain/errors"
	"electora/contexts/election-core/ballot-catalog/ports"
)

type Service struct {
	Repo   ports.BallotRepository
	Cycles ports.CycleLookup
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreatePositionInput struct {
	CycleID     string
	Name        string
	Description string
}

type CreateCandidateInput struct {
	PositionID string
	CycleID    string
	Title      string
	FirstName  string
	MiddleName string
	LastName   string
	Photo      string
	Manifesto  string
}

func (s Service) CreatePosition(ctx context.Context, input CreatePositionInput) (entities.Position, error) {
	cycleID := strings.TrimSpace(input.CycleID)
	name := strings.TrimSpace(input.Name)
	if cycleID == "" || name == "" {
		return entities.Position{}, domainerrors.ErrInvalidBallotInput
	}
	exists, err := s.Cycles.CycleExists(ctx, cycleID)
	if err != nil {
		return entities.Position{}, err
	}
	if !exists {
		return entities.Position{}, domainerrors.ErrCycleNotFound
	}
	positionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Position{}, err
	}
	now := s.now()
	position := entities.Position{
		PositionID:  positionID,
		CycleID:     cycleID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreatePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}
	ResolveLogger(s.Logger).Info("position created",
		"event", "ballot_position_created",
		"module", "election-core/ballot-catalog",
		"layer", "application",
		"position_id", position.PositionID,
		"cycle_id", position.CycleID,
	)
	return position, nil
}

func (s Service) GetPosition(ctx context.Context, positionID string) (entities.Position, error) {
	positionID = strings.TrimSpace(positionID)
	if positionID == "" {
		return entities.Position{}, domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.GetPosition(ctx, positionID)
}

func (s Service) ListPositions(ctx context.Context, cycleID string) ([]entities.Position, error) {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return nil, domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.ListPositionsByCycle(ctx, cycleID)
}

func (s Service) UpdatePosition(ctx context.Context, positionID string, name string, description string) (entities.Position, error) {
	positionID = strings.TrimSpace(positionID)
	name = strings.TrimSpace(name)
	if positionID == "" || name == "" {
		return entities.Position{}, domainerrors.ErrInvalidBallotInput
	}
	position, err := s.Repo.GetPosition(ctx, positionID)
	if err != nil {
		return entities.Position{}, err
	}
	position.Name = name
	position.Description = strings.TrimSpace(description)
	position.UpdatedAt = s.now()
	if err := s.Repo.UpdatePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}
	return position, nil
}

func (s Service) DeletePosition(ctx context.Context, positionID string) error {
	positionID = strings.TrimSpace(positionID)
	if positionID == "" {
		return domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.DeletePosition(ctx, positionID)
}

// CreateCandidate attaches a candidate to a position. The position's cycle is
// authoritative: a request naming a different cycle is rejected rather than
// silently corrected.
func (s Service) CreateCandidate(ctx context.Context, input CreateCandidateInput) (entities.Candidate, error) {
	positionID := strings.TrimSpace(input.PositionID)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if positionID == "" || firstName == "" || lastName == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidBallotInput
	}
	position, err := s.Repo.GetPosition(ctx, positionID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if requested := strings.TrimSpace(input.CycleID); requested != "" && requested != position.CycleID {
		return entities.Candidate{}, domainerrors.ErrCycleMismatch
	}
	candidateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := s.now()
	candidate := entities.Candidate{
		CandidateID: candidateID,
		PositionID:  position.PositionID,
		CycleID:     position.CycleID,
		Title:       strings.TrimSpace(input.Title),
		FirstName:   firstName,
		MiddleName:  strings.TrimSpace(input.MiddleName),
		LastName:    lastName,
		Photo:       strings.TrimSpace(input.Photo),
		Manifesto:   strings.TrimSpace(input.Manifesto),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	ResolveLogger(s.Logger).Info("candidate created",
		"event", "ballot_candidate_created",
		"module", "election-core/ballot-catalog",
		"layer", "application",
		"candidate_id", candidate.CandidateID,
		"position_id", candidate.PositionID,
		"cycle_id", candidate.CycleID,
	)
	return candidate, nil
}

func (s Service) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.GetCandidate(ctx, candidateID)
}

func (s Service) ListCandidatesByCycle(ctx context.Context, cycleID string) ([]entities.Candidate, error) {
	cycleID = strings.TrimSpace(cycleID)
	if cycleID == "" {
		return nil, domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.ListCandidatesByCycle(ctx, cycleID)
}

func (s Service) ListCandidatesByPosition(ctx context.Context, positionID string) ([]entities.Candidate, error) {
	positionID = strings.TrimSpace(positionID)
	if positionID == "" {
		return nil, domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.ListCandidatesByPosition(ctx, positionID)
}

func (s Service) UpdateCandidate(ctx context.Context, candidateID string, input CreateCandidateInput) (entities.Candidate, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidBallotInput
	}
	candidate, err := s.Repo.GetCandidate(ctx, candidateID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if requested := strings.TrimSpace(input.PositionID); requested != "" && requested != candidate.PositionID {
		position, err := s.Repo.GetPosition(ctx, requested)
		if err != nil {
			return entities.Candidate{}, err
		}
		if position.CycleID != candidate.CycleID {
			return entities.Candidate{}, domainerrors.ErrCycleMismatch
		}
		candidate.PositionID = position.PositionID
	}
	if v := strings.TrimSpace(input.Title); v != "" {
		candidate.Title = v
	}
	if v := strings.TrimSpace(input.FirstName); v != "" {
		candidate.FirstName = v
	}
	if v := strings.TrimSpace(input.MiddleName); v != "" {
		candidate.MiddleName = v
	}
	if v := strings.TrimSpace(input.LastName); v != "" {
		candidate.LastName = v
	}
	if v := strings.TrimSpace(input.Photo); v != "" {
		candidate.Photo = v
	}
	if v := strings.TrimSpace(input.Manifesto); v != "" {
		candidate.Manifesto = v
	}
	candidate.UpdatedAt = s.now()
	if err := s.Repo.UpdateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	return candidate, nil
}

func (s Service) DeleteCandidate(ctx context.Context, candidateID string) error {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return domainerrors.ErrInvalidBallotInput
	}
	return s.Repo.DeleteCandidate(ctx, candidateID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
