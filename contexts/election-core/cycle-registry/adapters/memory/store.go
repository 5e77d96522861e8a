package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electora/contexts/election-core/cycle-registry/domain/entities"
	domainerrors "electora/contexts/election-core/cycle-registry/domain/errors"
	"electora/contexts/election-core/cycle-registry/ports"

	"github.com/google/uuid"
)

// Store keeps cycles in memory for tests and local wiring. Ballot and ledger
// reference counts are tracked so delete-protection behaves like the real
// database foreign keys.
type Store struct {
	mu sync.RWMutex

	cycles map[string]entities.VotingCycle

	positionsByCycle  map[string]int
	candidatesByCycle map[string]int
	votesByCycle      map[string]int
}

func NewStore() *Store {
	return &Store{
		cycles:            make(map[string]entities.VotingCycle),
		positionsByCycle:  make(map[string]int),
		candidatesByCycle: make(map[string]int),
		votesByCycle:      make(map[string]int),
	}
}

// AddBallotRefs registers positions and candidates referencing the cycle, so
// cascade deletes have something to remove.
func (s *Store) AddBallotRefs(cycleID string, positions int, candidates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positionsByCycle[cycleID] += positions
	s.candidatesByCycle[cycleID] += candidates
}

// AddVoteRefs registers ledger rows referencing the cycle.
func (s *Store) AddVoteRefs(cycleID string, votes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votesByCycle[cycleID] += votes
}

func (s *Store) CreateCycle(_ context.Context, cycle entities.VotingCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cycles {
		if existing.Year == cycle.Year {
			return domainerrors.ErrCycleExists
		}
	}
	s.cycles[cycle.CycleID] = cycle
	return nil
}

func (s *Store) GetCycle(_ context.Context, cycleID string) (entities.VotingCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cycle, ok := s.cycles[strings.TrimSpace(cycleID)]
	if !ok {
		return entities.VotingCycle{}, domainerrors.ErrCycleNotFound
	}
	return cycle, nil
}

func (s *Store) GetActiveCycle(_ context.Context) (entities.VotingCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cycle := range s.cycles {
		if cycle.IsActive {
			return cycle, nil
		}
	}
	return entities.VotingCycle{}, domainerrors.ErrNoActiveCycle
}

func (s *Store) ListCycles(_ context.Context) ([]entities.VotingCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.VotingCycle, 0, len(s.cycles))
	for _, cycle := range s.cycles {
		items = append(items, cycle)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Year > items[j].Year })
	return items, nil
}

func (s *Store) UpdateCycle(_ context.Context, cycleID string, year int, startDate time.Time, endDate time.Time, updatedAt time.Time) (entities.VotingCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cycle, ok := s.cycles[strings.TrimSpace(cycleID)]
	if !ok {
		return entities.VotingCycle{}, domainerrors.ErrCycleNotFound
	}
	for _, existing := range s.cycles {
		if existing.CycleID != cycle.CycleID && existing.Year == year {
			return entities.VotingCycle{}, domainerrors.ErrCycleExists
		}
	}
	cycle.Year = year
	cycle.StartDate = startDate.UTC()
	cycle.EndDate = endDate.UTC()
	cycle.UpdatedAt = updatedAt.UTC()
	s.cycles[cycle.CycleID] = cycle
	return cycle, nil
}

func (s *Store) SetActiveCycle(_ context.Context, cycleID string, updatedAt time.Time) (entities.VotingCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.cycles[strings.TrimSpace(cycleID)]
	if !ok {
		return entities.VotingCycle{}, domainerrors.ErrCycleNotFound
	}
	for id, cycle := range s.cycles {
		if cycle.IsActive {
			cycle.IsActive = false
			cycle.UpdatedAt = updatedAt.UTC()
			s.cycles[id] = cycle
		}
	}
	target.IsActive = true
	target.UpdatedAt = updatedAt.UTC()
	s.cycles[target.CycleID] = target
	return target, nil
}

func (s *Store) DeleteCycle(_ context.Context, cycleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cycleID = strings.TrimSpace(cycleID)
	if _, ok := s.cycles[cycleID]; !ok {
		return domainerrors.ErrCycleNotFound
	}
	if s.votesByCycle[cycleID] > 0 {
		return domainerrors.ErrCycleInUse
	}
	delete(s.cycles, cycleID)
	delete(s.positionsByCycle, cycleID)
	delete(s.candidatesByCycle, cycleID)
	delete(s.votesByCycle, cycleID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.CycleRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
