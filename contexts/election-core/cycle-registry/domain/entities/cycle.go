package entities

import "time"

// VotingCycle is one election window, keyed by year. StartDate and EndDate
// bound the period; IsActive marks the single cycle currently open for voting.
type VotingCycle struct {
	CycleID   string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
