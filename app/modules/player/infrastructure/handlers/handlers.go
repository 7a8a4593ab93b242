package playerhandlers

import (
	"log/slog"

	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultPageSize applies when a listing request carries no pageSize.
const DefaultPageSize = 50

// PlayerHandlers serves the player directory over HTTP.
type PlayerHandlers struct {
	service         playerservice.Service
	logger          *slog.Logger
	tracer          trace.Tracer
	defaultPageSize int
}

// NewPlayerHandlers creates a new PlayerHandlers instance. A non-positive
// defaultPageSize falls back to DefaultPageSize.
func NewPlayerHandlers(
	service playerservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	defaultPageSize int,
) *PlayerHandlers {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("player-handlers")
	}
	return &PlayerHandlers{
		service:         service,
		logger:          logger,
		tracer:          tracer,
		defaultPageSize: defaultPageSize,
	}
}
