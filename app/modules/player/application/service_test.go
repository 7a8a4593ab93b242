package playerservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	players   *FakePlayerRepo
	games     *FakeGameRepo
	scores    *FakeScoreRepo
	publisher *FakePublisher
	metrics   *recordingMetrics
}

func newTestDeps() *testDeps {
	return &testDeps{
		players:   NewFakePlayerRepo(),
		games:     NewFakeGameRepo(),
		scores:    NewFakeScoreRepo(),
		publisher: NewFakePublisher(),
		metrics:   &recordingMetrics{PlayerMetrics: playermetrics.NewNoop()},
	}
}

func (d *testDeps) service(opts ...Option) *PlayerService {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewPlayerService(
		d.players,
		d.games,
		d.scores,
		d.publisher,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		d.metrics,
		noop.NewTracerProvider().Tracer("test"),
		nil,
		opts...,
	)
}

// recordingMetrics captures the measurements assertions care about.
type recordingMetrics struct {
	playermetrics.PlayerMetrics

	mu             sync.Mutex
	failures       []string
	deletions      []bool
	publishFailure []string
}

func (m *recordingMetrics) RecordOperationFailure(_ context.Context, operation, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, operation)
}

func (m *recordingMetrics) RecordPlayerDeleted(_ context.Context, forced bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletions = append(m.deletions, forced)
}

func (m *recordingMetrics) RecordEventPublishFailure(_ context.Context, topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFailure = append(m.publishFailure, topic)
}

func TestWithTelemetry_RecoversPanic(t *testing.T) {
	deps := newTestDeps()
	svc := deps.service()

	result, err := withTelemetry(svc, context.Background(), "Boom", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
		panic("kaputt")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in Boom")
	assert.False(t, result.IsSuccess())
	assert.Equal(t, []string{"Boom"}, deps.metrics.failures)
}

func TestWithTelemetry_WrapsInfrastructureError(t *testing.T) {
	deps := newTestDeps()
	svc := deps.service()
	cause := errors.New("connection reset")

	_, err := withTelemetry(svc, context.Background(), "ListPlayers", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
		return results.OperationResult[int, error]{}, cause
	})

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ListPlayers")
	assert.Equal(t, []string{"ListPlayers"}, deps.metrics.failures)
}

func TestRunInTx_WithoutDBCallsFunctionDirectly(t *testing.T) {
	svc := newTestDeps().service()

	called := false
	result, err := runInTx(svc, context.Background(), nil, func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
		called = true
		assert.Nil(t, db)
		return results.SuccessResult[string, error]("ok"), nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", *result.Success)
}

func TestNewPlayerService_Options(t *testing.T) {
	svc := newTestDeps().service(WithMaxPageSize(10), WithMaxPageSize(0))
	assert.Equal(t, 10, svc.maxPageSize)
	assert.Equal(t, fixedNow, svc.now())

	svc = NewPlayerService(nil, nil, nil, nil, nil, nil, nil, nil)
	assert.Equal(t, DefaultMaxPageSize, svc.maxPageSize)
	assert.NotNil(t, svc.logger)
}
