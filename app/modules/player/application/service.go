package playerservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/internal/eventbus"
	"github.com/bettercodepaul/Skat/internal/observability/attr"
	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "PlayerService"

	// DefaultMaxPageSize bounds ListPlayers unless overridden with WithMaxPageSize.
	DefaultMaxPageSize = 200
)

// PlayerService implements the Service interface.
type PlayerService struct {
	players   playerdb.Repository
	games     gamedb.Repository
	scores    scoredb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   playermetrics.PlayerMetrics
	tracer    trace.Tracer
	db        *bun.DB

	maxPageSize int
	now         func() time.Time
}

// Option customises a PlayerService.
type Option func(*PlayerService)

// WithMaxPageSize caps the page size accepted by ListPlayers.
func WithMaxPageSize(n int) Option {
	return func(s *PlayerService) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithClock replaces time.Now, which dates players without score snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *PlayerService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPlayerService creates a new PlayerService. publisher may be nil, in
// which case no events are emitted.
func NewPlayerService(
	players playerdb.Repository,
	games gamedb.Repository,
	scores scoredb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics playermetrics.PlayerMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PlayerService{
		players:     players,
		games:       games,
		scores:      scores,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
		maxPageSize: DefaultMaxPageSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Service = (*PlayerService)(nil)

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *PlayerService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// errRollback aborts a transaction whose operation returned a domain failure.
var errRollback = errors.New("rollback on domain failure")

// runInTx runs fn inside one transaction. A domain failure rolls the
// transaction back but is still returned as a result, not an error.
func runInTx[S any, F any](
	s *PlayerService,
	ctx context.Context,
	opts *sql.TxOptions,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	if opts == nil {
		opts = &sql.TxOptions{}
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}

	return result, err
}
