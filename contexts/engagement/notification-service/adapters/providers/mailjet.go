package providers

import (
	"context"
	"encoding/base64"
	"net/http"

	"electora/contexts/engagement/notification-service/ports"
)

const mailjetSendURL = "https://api.mailjet.com/v3.1/send"

type Mailjet struct {
	APIKey     string
	APISecret  string
	FromEmail  string
	FromName   string
	BaseURL    string
	HTTPClient *http.Client
}

func (p Mailjet) Name() string {
	return "mailjet"
}

func (p Mailjet) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	url := p.BaseURL
	if url == "" {
		url = mailjetSendURL
	}
	payload := map[string]any{
		"Messages": []map[string]any{
			{
				"From":     map[string]string{"Email": p.FromEmail, "Name": p.FromName},
				"To":       []map[string]string{{"Email": msg.To}},
				"Subject":  msg.Subject,
				"TextPart": msg.Body,
			},
		},
	}
	auth := base64.StdEncoding.EncodeToString([]byte(p.APIKey + ":" + p.APISecret))
	headers := map[string]string{"Authorization": "Basic " + auth}
	return postJSON(ctx, p.HTTPClient, url, headers, payload)
}

var _ ports.EmailProvider = Mailjet{}
