package notificationservice

import (
	"log/slog"

	httpadapter "electora/contexts/engagement/notification-service/adapters/http"
	"electora/contexts/engagement/notification-service/adapters/memory"
	"electora/contexts/engagement/notification-service/application"
	"electora/contexts/engagement/notification-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	EmailProviders []ports.EmailProvider
	SMSProviders   []ports.SMSProvider
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		EmailProviders: deps.EmailProviders,
		SMSProviders:   deps.SMSProviders,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule wires a single recording provider for both channels.
func NewInMemoryModule(logger *slog.Logger) (Module, *memory.Provider) {
	provider := memory.NewProvider("memory")
	module := NewModule(Dependencies{
		EmailProviders: []ports.EmailProvider{provider},
		SMSProviders:   []ports.SMSProvider{provider},
		Logger:         logger,
	})
	return module, provider
}
