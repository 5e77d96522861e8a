package providers

import (
	"context"
	"net/http"

	"electora/contexts/engagement/notification-service/ports"
)

const mailchimpSendURL = "https://mandrillapp.com/api/1.0/messages/send"

// Mailchimp sends through the Mandrill transactional API.
type Mailchimp struct {
	APIKey     string
	FromEmail  string
	FromName   string
	BaseURL    string
	HTTPClient *http.Client
}

func (p Mailchimp) Name() string {
	return "mailchimp"
}

func (p Mailchimp) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	url := p.BaseURL
	if url == "" {
		url = mailchimpSendURL
	}
	payload := map[string]any{
		"key": p.APIKey,
		"message": map[string]any{
			"from_email": p.FromEmail,
			"from_name":  p.FromName,
			"subject":    msg.Subject,
			"text":       msg.Body,
			"to": []map[string]string{
				{"email": msg.To, "type": "to"},
			},
		},
	}
	return postJSON(ctx, p.HTTPClient, url, nil, payload)
}

var _ ports.EmailProvider = Mailchimp{}
