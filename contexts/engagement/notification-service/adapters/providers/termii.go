package providers

import (
	"context"
	"net/http"

	"electora/contexts/engagement/notification-service/ports"
)

const termiiSendURL = "https://api.ng.termii.com/api/sms/send"

type Termii struct {
	APIKey     string
	SenderID   string
	BaseURL    string
	HTTPClient *http.Client
}

func (p Termii) Name() string {
	return "termii"
}

func (p Termii) SendSMS(ctx context.Context, msg ports.SMSMessage) error {
	url := p.BaseURL
	if url == "" {
		url = termiiSendURL
	}
	payload := map[string]any{
		"api_key": p.APIKey,
		"to":      msg.To,
		"from":    p.SenderID,
		"sms":     msg.Body,
		"type":    "plain",
		"channel": "generic",
	}
	return postJSON(ctx, p.HTTPClient, url, nil, payload)
}

var _ ports.SMSProvider = Termii{}
