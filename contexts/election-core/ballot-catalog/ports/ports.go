package ports

import (
	"context"
	"time"

	"electora/contexts/election-core/ballot-catalog/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CycleLookup answers whether a cycle exists. It reads the registry's table;
// the catalog never writes cycles.
type CycleLookup interface {
	CycleExists(ctx context.Context, cycleID string) (bool, error)
}

// BallotRepository persists positions and candidates. Deletes must refuse
// entries referenced by ledger rows.
type BallotRepository interface {
	CreatePosition(ctx context.Context, position entities.Position) error
	GetPosition(ctx context.Context, positionID string) (entities.Position, error)
	ListPositionsByCycle(ctx context.Context, cycleID string) ([]entities.Position, error)
	UpdatePosition(ctx context.Context, position entities.Position) error
	DeletePosition(ctx context.Context, positionID string) error

	CreateCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	ListCandidatesByCycle(ctx context.Context, cycleID string) ([]entities.Candidate, error)
	ListCandidatesByPosition(ctx context.Context, positionID string) ([]entities.Candidate, error)
	UpdateCandidate(ctx context.Context, candidate entities.Candidate) error
	DeleteCandidate(ctx context.Context, candidateID string) error
}
