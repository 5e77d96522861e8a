package identityservice

import (
	"log/slog"

	"electora/contexts/identity-access/identity-service/adapters/crypto"
	httpadapter "electora/contexts/identity-access/identity-service/adapters/http"
	"electora/contexts/identity-access/identity-service/adapters/memory"
	"electora/contexts/identity-access/identity-service/application"
	"electora/contexts/identity-access/identity-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo     ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenIssuer
	Notifier ports.WelcomeNotifier
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repo,
		Hasher:   deps.Hasher,
		Tokens:   deps.Tokens,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(tokens ports.TokenIssuer, notifier ports.WelcomeNotifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:     store,
		Hasher:   crypto.BcryptHasher{},
		Tokens:   tokens,
		Notifier: notifier,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
