package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	notificationerrors "electora/contexts/engagement/notification-service/domain/errors"
	notificationhttp "electora/contexts/engagement/notification-service/transport/http"
)

func (s *Server) registerNotificationRoutes() {
	s.mux.HandleFunc("POST /notifications/email/welcome", s.handleWelcomeEmail)
	s.mux.HandleFunc("POST /notifications/sms/verification", s.handleVerificationSMS)
}

func (s *Server) handleWelcomeEmail(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req notificationhttp.WelcomeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNotificationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.notifications.Handler.WelcomeEmailHandler(r.Context(), req)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerificationSMS(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req notificationhttp.VerificationSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNotificationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.notifications.Handler.VerificationSMSHandler(r.Context(), req)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrInvalidNotificationInput):
		writeNotificationError(w, http.StatusBadRequest, "invalid_notification_input", err.Error())
	case errors.Is(err, notificationerrors.ErrNoProviderConfigured):
		writeNotificationError(w, http.StatusServiceUnavailable, "no_provider_configured", err.Error())
	case errors.Is(err, notificationerrors.ErrAllProvidersFailed):
		writeNotificationError(w, http.StatusBadGateway, "all_providers_failed", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
