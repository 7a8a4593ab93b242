package player

import (
	"context"
	"fmt"
	"sync"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	playerhandlers "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/handlers"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	playerrouter "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/router"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/config"
	"github.com/bettercodepaul/Skat/internal/eventbus"
	"github.com/bettercodepaul/Skat/internal/observability"
	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the player directory module.
type Module struct {
	PlayerService playerservice.Service
	observability *observability.Observability

	stop     chan struct{}
	stopOnce sync.Once
}

// NewPlayerModule wires repositories, service and HTTP routes of the player
// directory. httpRouter may be nil when only the service is needed.
func NewPlayerModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	publisher eventbus.Publisher,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	if db == nil {
		return nil, fmt.Errorf("player module requires a database")
	}

	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "player.NewPlayerModule initializing")

	// 1. Initialize Repositories
	players := playerdb.NewRepository(db)
	games := gamedb.NewRepository(db)
	scores := scoredb.NewRepository(db)

	// 2. Metrics
	metrics := obs.Registry.PlayerMetrics
	if metrics == nil {
		metrics = playermetrics.NewNoop()
	}

	// 3. Initialize Service
	service := playerservice.NewPlayerService(
		players,
		games,
		scores,
		publisher,
		logger,
		metrics,
		tracer,
		db,
		playerservice.WithMaxPageSize(cfg.Players.MaxPageSize),
	)

	// 4. Register HTTP routes
	if httpRouter != nil {
		handlers := playerhandlers.NewPlayerHandlers(service, logger, tracer, cfg.Players.DefaultPageSize)
		playerrouter.Mount(httpRouter, handlers, cfg.HTTP)
	}

	return newModule(service, obs), nil
}

func newModule(service playerservice.Service, obs *observability.Observability) *Module {
	return &Module{
		PlayerService: service,
		observability: obs,
		stop:          make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting player module")

	if wg != nil {
		defer wg.Done()
	}

	select {
	case <-ctx.Done():
	case <-m.stop:
	}
	logger.InfoContext(ctx, "Player module goroutine stopped")
}

// Close stops Run. It is safe to call concurrently with Run and more than once.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping player module")

	m.stopOnce.Do(func() { close(m.stop) })

	logger.Info("Player module stopped")
	return nil
}
