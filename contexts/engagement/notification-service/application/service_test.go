package application

import (
	"context"
	"errors"
	"testing"

	"electora/contexts/engagement/notification-service/adapters/memory"
	domainerrors "electora/contexts/engagement/notification-service/domain/errors"
	"electora/contexts/engagement/notification-service/ports"
)

func TestSendEmailUsesPrimaryFirst(t *testing.T) {
	primary := memory.NewProvider("primary")
	fallback := memory.NewProvider("fallback")
	svc := Service{EmailProviders: []ports.EmailProvider{primary, fallback}}

	if err := svc.SendWelcomeEmail(context.Background(), "ada@example.com", "Ada Obi"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(primary.Emails) != 1 {
		t.Fatalf("primary should deliver, got %d messages", len(primary.Emails))
	}
	if len(fallback.Emails) != 0 {
		t.Fatalf("fallback must stay idle when primary succeeds, got %d", len(fallback.Emails))
	}
}

func TestSendEmailFallsBack(t *testing.T) {
	primary := memory.NewProvider("primary")
	primary.Fail = errors.New("quota exceeded")
	fallback := memory.NewProvider("fallback")
	svc := Service{EmailProviders: []ports.EmailProvider{primary, fallback}}

	if err := svc.SendWelcomeEmail(context.Background(), "ada@example.com", "Ada Obi"); err != nil {
		t.Fatalf("send with working fallback failed: %v", err)
	}
	if len(fallback.Emails) != 1 {
		t.Fatalf("expected fallback delivery, got %d messages", len(fallback.Emails))
	}
}

func TestSendEmailAllProvidersFailed(t *testing.T) {
	primary := memory.NewProvider("primary")
	primary.Fail = errors.New("down")
	fallback := memory.NewProvider("fallback")
	fallback.Fail = errors.New("also down")
	svc := Service{EmailProviders: []ports.EmailProvider{primary, fallback}}

	err := svc.SendWelcomeEmail(context.Background(), "ada@example.com", "Ada Obi")
	if !errors.Is(err, domainerrors.ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestSendSMSFallsBack(t *testing.T) {
	primary := memory.NewProvider("primary")
	primary.Fail = errors.New("down")
	fallback := memory.NewProvider("fallback")
	svc := Service{SMSProviders: []ports.SMSProvider{primary, fallback}}

	if err := svc.SendVerificationSMS(context.Background(), "+2348010000001", "123456"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(fallback.SMS) != 1 {
		t.Fatalf("expected fallback delivery, got %d messages", len(fallback.SMS))
	}
}

func TestSendValidatesInput(t *testing.T) {
	provider := memory.NewProvider("primary")
	svc := Service{
		EmailProviders: []ports.EmailProvider{provider},
		SMSProviders:   []ports.SMSProvider{provider},
	}
	if err := svc.SendEmail(context.Background(), ports.EmailMessage{}); !errors.Is(err, domainerrors.ErrInvalidNotificationInput) {
		t.Fatalf("expected ErrInvalidNotificationInput, got %v", err)
	}
	if err := svc.SendVerificationSMS(context.Background(), "+2348010000001", " "); !errors.Is(err, domainerrors.ErrInvalidNotificationInput) {
		t.Fatalf("expected ErrInvalidNotificationInput, got %v", err)
	}
}

func TestSendEmailNoProviders(t *testing.T) {
	svc := Service{}
	err := svc.SendEmail(context.Background(), ports.EmailMessage{To: "ada@example.com", Subject: "hi", Body: "x"})
	if !errors.Is(err, domainerrors.ErrNoProviderConfigured) {
		t.Fatalf("expected ErrNoProviderConfigured, got %v", err)
	}
}
