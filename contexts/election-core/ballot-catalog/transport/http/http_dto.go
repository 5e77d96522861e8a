package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePositionRequest struct {
	CycleID     string `json:"voting_cycle_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdatePositionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PositionResponse struct {
	PositionID  string `json:"position_id"`
	CycleID     string `json:"voting_cycle_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PositionListResponse struct {
	Items []PositionResponse `json:"items"`
}

type CandidateRequest struct {
	PositionID string `json:"position_id"`
	CycleID    string `json:"voting_cycle_id,omitempty"`
	Title      string `json:"title,omitempty"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Photo      string `json:"photo,omitempty"`
	Manifesto  string `json:"manifesto,omitempty"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	CycleID     string `json:"voting_cycle_id"`
	Title       string `json:"title,omitempty"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Photo       string `json:"photo,omitempty"`
	Manifesto   string `json:"manifesto,omitempty"`
}

type CandidateListResponse struct {
	Items []CandidateResponse `json:"items"`
}
