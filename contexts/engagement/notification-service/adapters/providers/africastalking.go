package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"electora/contexts/engagement/notification-service/ports"
)

const africastalkingSendURL = "https://api.africastalking.com/version1/messaging"

// AfricasTalking posts form-encoded requests; its messaging API does not take
// JSON.
type AfricasTalking struct {
	APIKey     string
	Username   string
	SenderID   string
	BaseURL    string
	HTTPClient *http.Client
}

func (p AfricasTalking) Name() string {
	return "africastalking"
}

func (p AfricasTalking) SendSMS(ctx context.Context, msg ports.SMSMessage) error {
	endpoint := p.BaseURL
	if endpoint == "" {
		endpoint = africastalkingSendURL
	}
	form := url.Values{}
	form.Set("username", p.Username)
	form.Set("to", msg.To)
	form.Set("message", msg.Body)
	if p.SenderID != "" {
		form.Set("from", p.SenderID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", p.APIKey)
	resp, err := defaultClient(p.HTTPClient).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

var _ ports.SMSProvider = AfricasTalking{}
