package ballotcatalog

import (
	"log/slog"

	httpadapter "electora/contexts/election-core/ballot-catalog/adapters/http"
	"electora/contexts/election-core/ballot-catalog/adapters/memory"
	"electora/contexts/election-core/ballot-catalog/application"
	"electora/contexts/election-core/ballot-catalog/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.BallotRepository
	Cycles ports.CycleLookup
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Cycles: deps.Cycles,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Cycles: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
