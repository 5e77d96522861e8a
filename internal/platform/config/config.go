package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	JWTSecret string
	TokenTTL  time.Duration

	EmailProvider string
	SMSProvider   string

	MailFromEmail    string
	MailFromName     string
	SendgridAPIKey   string
	MailchimpAPIKey  string
	MailjetAPIKey    string
	MailjetAPISecret string

	TermiiAPIKey         string
	TermiiSenderID       string
	AfricasTalkingAPIKey string
	AfricasTalkingUser   string
	AfricasTalkingSender string
}

func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "electora"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	tokenTTL := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			tokenTTL = parsed
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  tokenTTL,

		EmailProvider: envChoice("EMAIL_PROVIDER", "sendgrid"),
		SMSProvider:   envChoice("SMS_PROVIDER", "termii"),

		MailFromEmail:    os.Getenv("MAIL_FROM_EMAIL"),
		MailFromName:     os.Getenv("MAIL_FROM_NAME"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		MailchimpAPIKey:  os.Getenv("MAILCHIMP_API_KEY"),
		MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetAPISecret: os.Getenv("MAILJET_API_SECRET"),

		TermiiAPIKey:         os.Getenv("TERMII_API_KEY"),
		TermiiSenderID:       os.Getenv("TERMII_SENDER_ID"),
		AfricasTalkingAPIKey: os.Getenv("AFRICASTALKING_API_KEY"),
		AfricasTalkingUser:   os.Getenv("AFRICASTALKING_USERNAME"),
		AfricasTalkingSender: os.Getenv("AFRICASTALKING_SENDER_ID"),
	}, nil
}

func envChoice(name string, fallback string) string {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if value == "" {
		return fallback
	}
	return value
}
