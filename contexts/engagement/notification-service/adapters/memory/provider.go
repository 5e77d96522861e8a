package memory

import (
	"context"
	"sync"

	"electora/contexts/engagement/notification-service/ports"
)

// Provider is an in-memory email and SMS provider for tests and local
// wiring. It records every accepted message and can be told to fail.
type Provider struct {
	mu sync.Mutex

	ProviderName string
	Fail         error

	Emails []ports.EmailMessage
	SMS    []ports.SMSMessage
}

func NewProvider(name string) *Provider {
	return &Provider{ProviderName: name}
}

func (p *Provider) Name() string {
	return p.ProviderName
}

func (p *Provider) SendEmail(_ context.Context, msg ports.EmailMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil {
		return p.Fail
	}
	p.Emails = append(p.Emails, msg)
	return nil
}

func (p *Provider) SendSMS(_ context.Context, msg ports.SMSMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil {
		return p.Fail
	}
	p.SMS = append(p.SMS, msg)
	return nil
}

var _ ports.EmailProvider = (*Provider)(nil)
var _ ports.SMSProvider = (*Provider)(nil)
