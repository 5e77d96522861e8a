package entities

import "time"

// Vote is a single ballot fact. The ledger treats the triple
// (VoterID, PositionID, CycleID) as unique: a voter gets one vote per
// position per voting cycle, regardless of candidate.
type Vote struct {
	VoteID      string
	VoterID     string
	CandidateID string
	PositionID  string
	CycleID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BallotKey is the uniqueness key the ledger enforces.
func (v Vote) BallotKey() BallotKey {
	return BallotKey{
		VoterID:    v.VoterID,
		PositionID: v.PositionID,
		CycleID:    v.CycleID,
	}
}

type BallotKey struct {
	VoterID    string
	PositionID string
	CycleID    string
}

// TallyRow is one (position, candidate) count derived from the ledger.
// Counts are always computed, never cached on catalog entities.
type TallyRow struct {
	PositionID    string
	PositionName  string
	CandidateID   string
	CandidateName string
	Photo         string
	Votes         int
}

// Winner identifies the selected candidate for one position.
type Winner struct {
	CandidateID string
	Name        string
	Votes       int
}

// PositionResult reports the outcome for one position. Winner is nil when no
// vote was cast for any of the position's candidates.
type PositionResult struct {
	PositionID   string
	PositionName string
	TotalVotes   int
	Winner       *Winner
}

// SimulationReport summarizes a simulate-toward-targets run.
type SimulationReport struct {
	VotesCreated   int
	VotesRepointed int
	VotersSpent    int
	Unmet          map[string]int
}
