package ports

import (
	"context"
	"time"

	"electora/contexts/election-core/cycle-registry/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CycleRepository persists voting cycles. SetActiveCycle must swap the active
// flag atomically: deactivate whatever is active, then activate the target, or
// change nothing at all. DeleteCycle must refuse when ledger rows reference
// the cycle and must remove the cycle's positions and candidates with it.
type CycleRepository interface {
	CreateCycle(ctx context.Context, cycle entities.VotingCycle) error
	GetCycle(ctx context.Context, cycleID string) (entities.VotingCycle, error)
	GetActiveCycle(ctx context.Context) (entities.VotingCycle, error)
	ListCycles(ctx context.Context) ([]entities.VotingCycle, error)
	UpdateCycle(ctx context.Context, cycleID string, year int, startDate time.Time, endDate time.Time, updatedAt time.Time) (entities.VotingCycle, error)
	SetActiveCycle(ctx context.Context, cycleID string, updatedAt time.Time) (entities.VotingCycle, error)
	DeleteCycle(ctx context.Context, cycleID string) error
}
