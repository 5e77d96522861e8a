package ports

import (
	"context"
	"time"

	"electora/contexts/election-core/voting-engine/domain/entities"
)

// VoteRepository is the vote ledger. InsertVote must be backed by a unique
// constraint on (voter_id, position_id, voting_cycle_id) and return
// ErrAlreadyVoted when a concurrent or repeated insert hits the same key;
// the engine relies on the store, not application locks, to close the
// check-then-insert race.
type VoteRepository interface {
	InsertVote(ctx context.Context, vote entities.Vote) error
	GetVoteByBallotKey(ctx context.Context, key entities.BallotKey) (entities.Vote, bool, error)
	ListVotesByCycle(ctx context.Context, cycleID string) ([]entities.Vote, error)
	ListVotesByVoter(ctx context.Context, voterID string, cycleID string) ([]entities.Vote, error)
	RepointVote(ctx context.Context, voteID string, candidateID string, updatedAt time.Time) error
}

// CandidateRef is the catalog projection the engine needs to resolve a ballot.
type CandidateRef struct {
	CandidateID string
	PositionID  string
	CycleID     string
	Name        string
	Photo       string
}

type PositionRef struct {
	PositionID string
	CycleID    string
	Name       string
}

type BallotCatalog interface {
	GetCandidate(ctx context.Context, candidateID string) (CandidateRef, error)
	ListPositionsByCycle(ctx context.Context, cycleID string) ([]PositionRef, error)
	ListCandidatesByCycle(ctx context.Context, cycleID string) ([]CandidateRef, error)
}

type CycleRef struct {
	CycleID  string
	Year     int
	IsActive bool
}

type CycleRegistry interface {
	GetCycle(ctx context.Context, cycleID string) (CycleRef, error)
}

type VoterRef struct {
	VoterID string
	Role    string
}

type VoterDirectory interface {
	GetVoter(ctx context.Context, voterID string) (VoterRef, error)
	ListMembers(ctx context.Context) ([]VoterRef, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Rand supplies uniform randomness for the simulation utility so tests can
// pin candidate selection.
type Rand interface {
	Intn(n int) int
}
