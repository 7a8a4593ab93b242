// Package observability initialises logging, tracing and metrics for the
// service binaries.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bettercodepaul/Skat/config"
	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider owns the process-wide telemetry backends.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// MetricsHandler is nil when metrics are disabled.
	MetricsHandler http.Handler

	shutdowns []func(context.Context) error
}

// Registry holds the instruments handed to modules.
type Registry struct {
	Tracer        trace.Tracer
	PlayerMetrics playermetrics.PlayerMetrics
}

// Observability bundles Provider and Registry.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer provider and meter provider from cfg.
func Init(ctx context.Context, cfg config.ObservabilityConfig) (*Observability, error) {
	logger := NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat,
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	tp, traceShutdown, err := setupTracing(ctx, cfg.OTLPEndpoint, cfg.TraceSampleRate, res)
	if err != nil {
		return nil, err
	}

	mp, handler, metricsShutdown, err := setupMetrics(cfg.MetricsEnabled, res)
	if err != nil {
		_ = traceShutdown(ctx)
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	pm, err := playermetrics.NewPlayerMetrics(mp.Meter("skat/player"), "skat")
	if err != nil {
		_ = traceShutdown(ctx)
		_ = metricsShutdown(ctx)
		return nil, fmt.Errorf("failed to create player metrics: %w", err)
	}

	logger.InfoContext(ctx, "Observability initialized",
		slog.Bool("tracing", cfg.OTLPEndpoint != ""),
		slog.Bool("metrics", cfg.MetricsEnabled),
	)

	return &Observability{
		Provider: &Provider{
			Logger:         logger,
			TracerProvider: tp,
			MeterProvider:  mp,
			MetricsHandler: handler,
			shutdowns:      []func(context.Context) error{traceShutdown, metricsShutdown},
		},
		Registry: &Registry{
			Tracer:        tp.Tracer("skat-backend"),
			PlayerMetrics: pm,
		},
	}, nil
}

// Shutdown flushes exporters.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.Provider == nil {
		return nil
	}
	var errs []error
	for _, fn := range o.Provider.shutdowns {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
