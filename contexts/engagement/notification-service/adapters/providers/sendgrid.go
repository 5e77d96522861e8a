package providers

import (
	"context"
	"net/http"

	"electora/contexts/engagement/notification-service/ports"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

type Sendgrid struct {
	APIKey     string
	FromEmail  string
	FromName   string
	BaseURL    string
	HTTPClient *http.Client
}

func (p Sendgrid) Name() string {
	return "sendgrid"
}

func (p Sendgrid) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	url := p.BaseURL
	if url == "" {
		url = sendgridSendURL
	}
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": p.FromEmail, "name": p.FromName},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Body},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + p.APIKey}
	return postJSON(ctx, p.HTTPClient, url, headers, payload)
}

var _ ports.EmailProvider = Sendgrid{}
