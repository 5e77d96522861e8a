package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "electora/contexts/engagement/notification-service/domain/errors"
	"electora/contexts/engagement/notification-service/ports"
)

// Service fans a message out to the first provider in the chain that accepts
// it. Order is configuration: index zero is the primary, the rest are
// fallbacks tried in sequence.
type Service struct {
	EmailProviders []ports.EmailProvider
	SMSProviders   []ports.SMSProvider
	Logger         *slog.Logger
}

func (s Service) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	msg.To = strings.TrimSpace(msg.To)
	if msg.To == "" || strings.TrimSpace(msg.Subject) == "" {
		return domainerrors.ErrInvalidNotificationInput
	}
	if len(s.EmailProviders) == 0 {
		return domainerrors.ErrNoProviderConfigured
	}
	logger := ResolveLogger(s.Logger)
	var lastErr error
	for _, provider := range s.EmailProviders {
		err := provider.SendEmail(ctx, msg)
		if err == nil {
			logger.Info("email delivered",
				"event", "notification_email_delivered",
				"module", "engagement/notification-service",
				"layer", "application",
				"provider", provider.Name(),
			)
			return nil
		}
		lastErr = err
		logger.Warn("email provider failed, trying next",
			"event", "notification_email_provider_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"provider", provider.Name(),
			"error", err.Error(),
		)
	}
	return errors.Join(domainerrors.ErrAllProvidersFailed, lastErr)
}

func (s Service) SendSMS(ctx context.Context, msg ports.SMSMessage) error {
	msg.To = strings.TrimSpace(msg.To)
	if msg.To == "" || strings.TrimSpace(msg.Body) == "" {
		return domainerrors.ErrInvalidNotificationInput
	}
	if len(s.SMSProviders) == 0 {
		return domainerrors.ErrNoProviderConfigured
	}
	logger := ResolveLogger(s.Logger)
	var lastErr error
	for _, provider := range s.SMSProviders {
		err := provider.SendSMS(ctx, msg)
		if err == nil {
			logger.Info("sms delivered",
				"event", "notification_sms_delivered",
				"module", "engagement/notification-service",
				"layer", "application",
				"provider", provider.Name(),
			)
			return nil
		}
		lastErr = err
		logger.Warn("sms provider failed, trying next",
			"event", "notification_sms_provider_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"provider", provider.Name(),
			"error", err.Error(),
		)
	}
	return errors.Join(domainerrors.ErrAllProvidersFailed, lastErr)
}

// SendWelcomeEmail renders the fixed post-registration template.
func (s Service) SendWelcomeEmail(ctx context.Context, email string, fullName string) error {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "there"
	}
	return s.SendEmail(ctx, ports.EmailMessage{
		To:      email,
		Subject: "Welcome to the association",
		Body:    fmt.Sprintf("Hello %s, your membership account is ready. You can now sign in and take part in elections.", name),
	})
}

// SendVerificationSMS delivers a one-time code.
func (s Service) SendVerificationSMS(ctx context.Context, phone string, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domainerrors.ErrInvalidNotificationInput
	}
	return s.SendSMS(ctx, ports.SMSMessage{
		To:   phone,
		Body: fmt.Sprintf("Your verification code is %s", code),
	})
}
