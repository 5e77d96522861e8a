package postgresadapter

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// UUIDGenerator creates UUIDv4 identifiers for ledger rows.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// SystemRand backs the simulation utility's uniform candidate picks.
type SystemRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSystemRand(seed int64) *SystemRand {
	return &SystemRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *SystemRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
