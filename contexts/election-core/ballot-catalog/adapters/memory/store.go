package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electora/contexts/election-core/ballot-catalog/domain/entities"
	domainerrors "electora/contexts/election-core/ballot-catalog/domain/errors"
	"electora/contexts/election-core/ballot-catalog/ports"

	"github.com/google/uuid"
)

// Store keeps the ballot in memory for tests and local wiring. Vote reference
// counts stand in for the database foreign keys guarding deletes.
type Store struct {
	mu sync.RWMutex

	positions  map[string]entities.Position
	candidates map[string]entities.Candidate
	cycles     map[string]bool

	votesByPosition  map[string]int
	votesByCandidate map[string]int
}

func NewStore() *Store {
	return &Store{
		positions:        make(map[string]entities.Position),
		candidates:       make(map[string]entities.Candidate),
		cycles:           make(map[string]bool),
		votesByPosition:  make(map[string]int),
		votesByCandidate: make(map[string]int),
	}
}

func (s *Store) SetCycle(cycleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles[strings.TrimSpace(cycleID)] = true
}

// AddVoteRefs registers ledger rows against a position and candidate so
// delete-protection can be exercised.
func (s *Store) AddVoteRefs(positionID string, candidateID string, votes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votesByPosition[positionID] += votes
	s.votesByCandidate[candidateID] += votes
}

func (s *Store) CycleExists(_ context.Context, cycleID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycles[strings.TrimSpace(cycleID)], nil
}

func (s *Store) CreatePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[position.PositionID] = position
	return nil
}

func (s *Store) GetPosition(_ context.Context, positionID string) (entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	position, ok := s.positions[strings.TrimSpace(positionID)]
	if !ok {
		return entities.Position{}, domainerrors.ErrPositionNotFound
	}
	return position, nil
}

func (s *Store) ListPositionsByCycle(_ context.Context, cycleID string) ([]entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Position, 0)
	for _, position := range s.positions {
		if position.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, position)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PositionID < items[j].PositionID })
	return items, nil
}

func (s *Store) UpdatePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[position.PositionID]; !ok {
		return domainerrors.ErrPositionNotFound
	}
	s.positions[position.PositionID] = position
	return nil
}

func (s *Store) DeletePosition(_ context.Context, positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	positionID = strings.TrimSpace(positionID)
	if _, ok := s.positions[positionID]; !ok {
		return domainerrors.ErrPositionNotFound
	}
	if s.votesByPosition[positionID] > 0 {
		return domainerrors.ErrBallotInUse
	}
	for id, candidate := range s.candidates {
		if candidate.PositionID == positionID {
			delete(s.candidates, id)
		}
	}
	delete(s.positions, positionID)
	return nil
}

func (s *Store) CreateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.CandidateID] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) ListCandidatesByCycle(_ context.Context, cycleID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CandidateID < items[j].CandidateID })
	return items, nil
}

func (s *Store) ListCandidatesByPosition(_ context.Context, positionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.PositionID == strings.TrimSpace(positionID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CandidateID < items[j].CandidateID })
	return items, nil
}

func (s *Store) UpdateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidate.CandidateID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	s.candidates[candidate.CandidateID] = candidate
	return nil
}

func (s *Store) DeleteCandidate(_ context.Context, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidateID = strings.TrimSpace(candidateID)
	if _, ok := s.candidates[candidateID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	if s.votesByCandidate[candidateID] > 0 {
		return domainerrors.ErrBallotInUse
	}
	delete(s.candidates, candidateID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.BallotRepository = (*Store)(nil)
var _ ports.CycleLookup = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
