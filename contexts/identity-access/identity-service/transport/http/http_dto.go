package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	MembershipID string `json:"membership_id"`
	Password     string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdateUserRequest struct {
	Title      string `json:"title,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
}

type UserResponse struct {
	UserID       string `json:"user_id"`
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	MembershipID string `json:"membership_id"`
	Role         string `json:"role"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

type ImportSkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Created int                `json:"created"`
	Skipped []ImportSkippedRow `json:"skipped"`
}
