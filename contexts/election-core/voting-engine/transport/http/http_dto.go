package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type VoteResponse struct {
	VoteID      string `json:"vote_id"`
	VoterID     string `json:"voter_id"`
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	CycleID     string `json:"voting_cycle_id"`
}

type TallyItem struct {
	PositionID    string `json:"position_id"`
	PositionName  string `json:"position_name"`
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Photo         string `json:"photo,omitempty"`
	VoteCount     int    `json:"vote_count"`
}

type TallyResponse struct {
	CycleID string      `json:"voting_cycle_id"`
	Items   []TallyItem `json:"items"`
}

type WinnerItem struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       int    `json:"votes"`
}

type PositionWinner struct {
	PositionID string      `json:"position_id"`
	Position   string      `json:"position"`
	TotalVotes int         `json:"total_votes"`
	Winner     *WinnerItem `json:"winner,omitempty"`
	NoWinner   bool        `json:"no_winner"`
}

type WinnersResponse struct {
	CycleID string           `json:"voting_cycle_id"`
	Items   []PositionWinner `json:"items"`
}

type EligibilityResponse struct {
	CycleID   string `json:"voting_cycle_id"`
	VoterID   string `json:"voter_id"`
	Completed bool   `json:"completed"`
}

type CandidateTarget struct {
	CandidateID string `json:"candidate_id"`
	TargetVotes int    `json:"target_votes"`
}

type SimulateRequest struct {
	CycleID          string            `json:"voting_cycle_id"`
	CandidateTargets []CandidateTarget `json:"candidates_targets"`
}

type SimulateResponse struct {
	VotesCreated   int               `json:"votes_created"`
	VotesRepointed int               `json:"votes_repointed"`
	VotersSpent    int               `json:"voters_spent"`
	Unmet          []CandidateTarget `json:"unmet,omitempty"`
}
