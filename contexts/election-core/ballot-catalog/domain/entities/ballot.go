package entities

import (
	"strings"
	"time"
)

type Position struct {
	PositionID  string
	CycleID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Candidate struct {
	CandidateID string
	PositionID  string
	CycleID     string
	Title       string
	FirstName   string
	MiddleName  string
	LastName    string
	Photo       string
	Manifesto   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName joins the candidate's name parts, skipping empty ones.
func (c Candidate) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, " ")
}
