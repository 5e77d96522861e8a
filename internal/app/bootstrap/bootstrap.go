package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotcatalog "electora/contexts/election-core/ballot-catalog"
	ballotpostgres "electora/contexts/election-core/ballot-catalog/adapters/postgres"
	cycleregistry "electora/contexts/election-core/cycle-registry"
	cyclepostgres "electora/contexts/election-core/cycle-registry/adapters/postgres"
	votingengine "electora/contexts/election-core/voting-engine"
	votingpostgres "electora/contexts/election-core/voting-engine/adapters/postgres"
	"electora/contexts/election-core/voting-engine/application/commands"
	"electora/contexts/election-core/voting-engine/domain/entities"
	notificationservice "electora/contexts/engagement/notification-service"
	"electora/contexts/engagement/notification-service/adapters/providers"
	notificationports "electora/contexts/engagement/notification-service/ports"
	identityservice "electora/contexts/identity-access/identity-service"
	"electora/contexts/identity-access/identity-service/adapters/crypto"
	identitypostgres "electora/contexts/identity-access/identity-service/adapters/postgres"
	"electora/internal/platform/config"
	"electora/internal/platform/db"
	"electora/internal/platform/httpserver"
	"electora/internal/platform/token"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

// SimulatorApp drives the bulk vote-assignment tool against a live database.
type SimulatorApp struct {
	simulate commands.SimulateUseCase
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	tokens := token.Issuer{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	}

	notifications := notificationservice.NewModule(notificationservice.Dependencies{
		EmailProviders: emailProviders(cfg),
		SMSProviders:   smsProviders(cfg),
		Logger:         logger,
	})

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identity := identityservice.NewModule(identityservice.Dependencies{
		Repo:     identityRepo,
		Hasher:   crypto.BcryptHasher{},
		Tokens:   tokens,
		Notifier: welcomeNotifier{service: notifications.Service},
		Clock:    identitypostgres.SystemClock{},
		IDGen:    identitypostgres.UUIDGenerator{},
		Logger:   logger,
	})

	cycleRepo := cyclepostgres.NewRepository(pg.DB, logger)
	cycles := cycleregistry.NewModule(cycleregistry.Dependencies{
		Repo:   cycleRepo,
		Clock:  cyclepostgres.SystemClock{},
		IDGen:  cyclepostgres.UUIDGenerator{},
		Logger: logger,
	})

	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	ballots := ballotcatalog.NewModule(ballotcatalog.Dependencies{
		Repo:   ballotRepo,
		Cycles: ballotRepo,
		Clock:  ballotpostgres.SystemClock{},
		IDGen:  ballotpostgres.UUIDGenerator{},
		Logger: logger,
	})

	votes := votingengine.NewModule(votingDependencies(pg, logger))

	server := httpserver.New(
		identity,
		cycles,
		ballots,
		votes,
		notifications,
		tokens,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildSimulator() (*SimulatorApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "simulate")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	deps := votingDependencies(pg, logger)
	return &SimulatorApp{
		simulate: commands.SimulateUseCase{
			Votes:   deps.Votes,
			Catalog: deps.Catalog,
			Cycles:  deps.Cycles,
			Voters:  deps.Voters,
			Clock:   deps.Clock,
			IDGen:   deps.IDGen,
			Rand:    deps.Rand,
			Logger:  logger,
		},
		postgres: pg,
		logger:   logger,
	}, nil
}

func votingDependencies(pg *db.Postgres, logger *slog.Logger) votingengine.Dependencies {
	repo := votingpostgres.NewRepository(pg.DB, logger)
	return votingengine.Dependencies{
		Votes:   repo,
		Catalog: repo,
		Cycles:  repo,
		Voters:  repo,
		Clock:   votingpostgres.SystemClock{},
		IDGen:   votingpostgres.UUIDGenerator{},
		Rand:    votingpostgres.NewSystemRand(time.Now().UnixNano()),
		Logger:  logger,
	}
}

// welcomeNotifier adapts the notification service to the identity context's
// notifier port. Delivery failures are the caller's concern to log, not to
// roll back on.
type welcomeNotifier struct {
	service interface {
		SendWelcomeEmail(ctx context.Context, email string, fullName string) error
	}
}

func (n welcomeNotifier) SendWelcome(ctx context.Context, email string, _ string, fullName string) error {
	return n.service.SendWelcomeEmail(ctx, email, fullName)
}

// emailProviders builds the fallback chain. The configured primary goes
// first; every other provider with credentials follows in a fixed order.
func emailProviders(cfg config.Config) []notificationports.EmailProvider {
	available := map[string]notificationports.EmailProvider{}
	if cfg.SendgridAPIKey != "" {
		available["sendgrid"] = providers.Sendgrid{
			APIKey:    cfg.SendgridAPIKey,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}
	}
	if cfg.MailchimpAPIKey != "" {
		available["mailchimp"] = providers.Mailchimp{
			APIKey:    cfg.MailchimpAPIKey,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}
	}
	if cfg.MailjetAPIKey != "" {
		available["mailjet"] = providers.Mailjet{
			APIKey:    cfg.MailjetAPIKey,
			APISecret: cfg.MailjetAPISecret,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}
	}

	chain := make([]notificationports.EmailProvider, 0, len(available))
	if primary, ok := available[cfg.EmailProvider]; ok {
		chain = append(chain, primary)
		delete(available, cfg.EmailProvider)
	}
	for _, name := range []string{"sendgrid", "mailchimp", "mailjet"} {
		if provider, ok := available[name]; ok {
			chain = append(chain, provider)
		}
	}
	return chain
}

func smsProviders(cfg config.Config) []notificationports.SMSProvider {
	available := map[string]notificationports.SMSProvider{}
	if cfg.TermiiAPIKey != "" {
		available["termii"] = providers.Termii{
			APIKey:   cfg.TermiiAPIKey,
			SenderID: cfg.TermiiSenderID,
		}
	}
	if cfg.AfricasTalkingAPIKey != "" {
		available["africastalking"] = providers.AfricasTalking{
			APIKey:   cfg.AfricasTalkingAPIKey,
			Username: cfg.AfricasTalkingUser,
			SenderID: cfg.AfricasTalkingSender,
		}
	}

	chain := make([]notificationports.SMSProvider, 0, len(available))
	if primary, ok := available[cfg.SMSProvider]; ok {
		chain = append(chain, primary)
		delete(available, cfg.SMSProvider)
	}
	for _, name := range []string{"termii", "africastalking"} {
		if provider, ok := available[name]; ok {
			chain = append(chain, provider)
		}
	}
	return chain
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (s *SimulatorApp) Run(ctx context.Context, cycleID string, targets map[string]int) (entities.SimulationReport, error) {
	return s.simulate.Simulate(ctx, commands.SimulateCommand{
		CycleID: cycleID,
		Targets: targets,
	})
}

func (s *SimulatorApp) Close() error {
	if s.postgres != nil {
		return s.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
