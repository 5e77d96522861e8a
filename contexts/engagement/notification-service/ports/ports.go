package ports

import "context"

type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

type SMSMessage struct {
	To   string
	Body string
}

type EmailProvider interface {
	Name() string
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SMSProvider interface {
	Name() string
	SendSMS(ctx context.Context, msg SMSMessage) error
}
