package votingengine

import (
	"log/slog"

	httpadapter "electora/contexts/election-core/voting-engine/adapters/http"
	"electora/contexts/election-core/voting-engine/adapters/memory"
	"electora/contexts/election-core/voting-engine/application/commands"
	"electora/contexts/election-core/voting-engine/application/queries"
	"electora/contexts/election-core/voting-engine/domain/entities"
	"electora/contexts/election-core/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votes   ports.VoteRepository
	Catalog ports.BallotCatalog
	Cycles  ports.CycleRegistry
	Voters  ports.VoterDirectory
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Rand    ports.Rand
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	castUseCase := commands.CastVoteUseCase{
		Votes:   deps.Votes,
		Catalog: deps.Catalog,
		Cycles:  deps.Cycles,
		Voters:  deps.Voters,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	simulateUseCase := commands.SimulateUseCase{
		Votes:   deps.Votes,
		Catalog: deps.Catalog,
		Cycles:  deps.Cycles,
		Voters:  deps.Voters,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Rand:    deps.Rand,
		Logger:  deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Votes:   deps.Votes,
		Catalog: deps.Catalog,
		Cycles:  deps.Cycles,
	}
	return Module{
		Handler: httpadapter.Handler{
			Cast:       castUseCase,
			Simulation: simulateUseCase,
			Results:    resultsUseCase,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Vote, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Votes:   store,
		Catalog: store,
		Cycles:  store,
		Voters:  store,
		Clock:   store,
		IDGen:   store,
		Rand:    store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
