package memory

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory ledger plus catalog/registry/directory projections
// used by tests and local wiring. It enforces the same ballot-key uniqueness
// the postgres constraint does, so duplicate inserts (including concurrent
// ones) fail with ErrAlreadyVoted here too.
type Store struct {
	mu sync.RWMutex

	votes     map[string]entities.Vote
	ballotKey map[entities.BallotKey]string

	candidates map[string]ports.CandidateRef
	positions  map[string]ports.PositionRef
	cycles     map[string]ports.CycleRef
	voters     map[string]ports.VoterRef

	rng *rand.Rand
}

func NewStore(seed []entities.Vote) *Store {
	store := &Store{
		votes:      make(map[string]entities.Vote, len(seed)),
		ballotKey:  make(map[entities.BallotKey]string, len(seed)),
		candidates: make(map[string]ports.CandidateRef),
		positions:  make(map[string]ports.PositionRef),
		cycles:     make(map[string]ports.CycleRef),
		voters:     make(map[string]ports.VoterRef),
		rng:        rand.New(rand.NewSource(1)),
	}
	for _, vote := range seed {
		store.votes[vote.VoteID] = vote
		store.ballotKey[vote.BallotKey()] = vote.VoteID
	}
	return store
}

func (s *Store) SetCandidate(candidate ports.CandidateRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
}

func (s *Store) SetPosition(position ports.PositionRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
}

func (s *Store) SetCycle(cycle ports.CycleRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles[strings.TrimSpace(cycle.CycleID)] = cycle
}

func (s *Store) SetVoter(voter ports.VoterRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.VoterID)] = voter
}

func (s *Store) InsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := vote.BallotKey()
	if _, taken := s.ballotKey[key]; taken {
		return domainerrors.ErrAlreadyVoted
	}
	s.ballotKey[key] = vote.VoteID
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) GetVoteByBallotKey(_ context.Context, key entities.BallotKey) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voteID, ok := s.ballotKey[key]
	if !ok {
		return entities.Vote{}, false, nil
	}
	return s.votes[voteID], true, nil
}

func (s *Store) ListVotesByCycle(_ context.Context, cycleID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) ListVotesByVoter(_ context.Context, voterID string, cycleID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.VoterID == strings.TrimSpace(voterID) && vote.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) RepointVote(_ context.Context, voteID string, candidateID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return domainerrors.ErrVoteNotFound
	}
	vote.CandidateID = strings.TrimSpace(candidateID)
	vote.UpdatedAt = updatedAt.UTC()
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (ports.CandidateRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return ports.CandidateRef{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) ListPositionsByCycle(_ context.Context, cycleID string) ([]ports.PositionRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.PositionRef, 0)
	for _, position := range s.positions {
		if position.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, position)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PositionID < items[j].PositionID })
	return items, nil
}

func (s *Store) ListCandidatesByCycle(_ context.Context, cycleID string) ([]ports.CandidateRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.CandidateRef, 0)
	for _, candidate := range s.candidates {
		if candidate.CycleID == strings.TrimSpace(cycleID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CandidateID < items[j].CandidateID })
	return items, nil
}

func (s *Store) GetCycle(_ context.Context, cycleID string) (ports.CycleRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cycle, ok := s.cycles[strings.TrimSpace(cycleID)]
	if !ok {
		return ports.CycleRef{}, domainerrors.ErrCycleNotFound
	}
	return cycle, nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (ports.VoterRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return ports.VoterRef{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) ListMembers(_ context.Context) ([]ports.VoterRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.VoterRef, 0)
	for _, voter := range s.voters {
		if strings.EqualFold(voter.Role, "member") {
			items = append(items, voter)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].VoterID < items[j].VoterID })
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func sortVotes(items []entities.Vote) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.BallotCatalog = (*Store)(nil)
var _ ports.CycleRegistry = (*Store)(nil)
var _ ports.VoterDirectory = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.Rand = (*Store)(nil)
