package httpadapter

import (
	"context"
	"log/slog"

	"electora/contexts/engagement/notification-service/application"
	httptransport "electora/contexts/engagement/notification-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) WelcomeEmailHandler(ctx context.Context, req httptransport.WelcomeEmailRequest) (httptransport.DeliveryResponse, error) {
	if err := h.Service.SendWelcomeEmail(ctx, req.Email, req.FullName); err != nil {
		return httptransport.DeliveryResponse{}, err
	}
	return httptransport.DeliveryResponse{Delivered: true}, nil
}

func (h Handler) VerificationSMSHandler(ctx context.Context, req httptransport.VerificationSMSRequest) (httptransport.DeliveryResponse, error) {
	if err := h.Service.SendVerificationSMS(ctx, req.Phone, req.Code); err != nil {
		return httptransport.DeliveryResponse{}, err
	}
	return httptransport.DeliveryResponse{Delivered: true}, nil
}
