package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type WelcomeEmailRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

type VerificationSMSRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type DeliveryResponse struct {
	Delivered bool `json:"delivered"`
}
