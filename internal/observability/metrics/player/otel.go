package playermetrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type otelMetrics struct {
	attempts       metric.Int64Counter
	successes      metric.Int64Counter
	failures       metric.Int64Counter
	duration       metric.Float64Histogram
	deleted        metric.Int64Counter
	publishFailure metric.Int64Counter
}

// NewPlayerMetrics creates the player instruments on meter.
func NewPlayerMetrics(meter metric.Meter, prefix string) (PlayerMetrics, error) {
	m := &otelMetrics{}
	var err error

	if m.attempts, err = meter.Int64Counter(prefix+"_player_operation_attempts_total",
		metric.WithDescription("Player service operations started")); err != nil {
		return nil, err
	}
	if m.successes, err = meter.Int64Counter(prefix+"_player_operation_success_total",
		metric.WithDescription("Player service operations finished without infrastructure error")); err != nil {
		return nil, err
	}
	if m.failures, err = meter.Int64Counter(prefix+"_player_operation_failures_total",
		metric.WithDescription("Player service operations that returned an error")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram(prefix+"_player_operation_duration_seconds",
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.deleted, err = meter.Int64Counter(prefix + "_players_deleted_total"); err != nil {
		return nil, err
	}
	if m.publishFailure, err = meter.Int64Counter(prefix + "_player_event_publish_failures_total"); err != nil {
		return nil, err
	}
	return m, nil
}

func opAttrs(operation, service string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("service", service),
	)
}

func (m *otelMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	m.attempts.Add(ctx, 1, opAttrs(operation, service))
}

func (m *otelMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	m.successes.Add(ctx, 1, opAttrs(operation, service))
}

func (m *otelMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	m.failures.Add(ctx, 1, opAttrs(operation, service))
}

func (m *otelMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
	m.duration.Record(ctx, duration.Seconds(), opAttrs(operation, service))
}

func (m *otelMetrics) RecordPlayerDeleted(ctx context.Context, forced bool) {
	mode := "safe"
	if forced {
		mode = "forced"
	}
	m.deleted.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

func (m *otelMetrics) RecordEventPublishFailure(ctx context.Context, topic string) {
	m.publishFailure.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}
