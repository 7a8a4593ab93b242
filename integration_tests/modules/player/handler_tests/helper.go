package playerhandlerintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bettercodepaul/Skat/app/modules/player"
	"github.com/bettercodepaul/Skat/integration_tests/testutils"
	"github.com/bettercodepaul/Skat/internal/eventbus"
	"github.com/bettercodepaul/Skat/internal/observability"
	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// HandlerTestDeps is a running HTTP server backed by the real player module.
type HandlerTestDeps struct {
	Ctx       context.Context
	Env       *testutils.TestEnvironment
	Server    *httptest.Server
	Generator *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker; skipped in -short mode")
	}

	testEnvOnce.Do(func() {
		log.Println("Initializing player handler test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})

	if testEnvErr != nil {
		t.Fatalf("Handler test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Handler test environment not initialized")
	}
	return testEnv
}

// SetupHandlerTest resets the tables and serves a fresh player module that
// publishes its events to the test NATS server.
func SetupHandlerTest(t *testing.T) HandlerTestDeps {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := &observability.Observability{
		Provider: &observability.Provider{Logger: logger},
		Registry: &observability.Registry{
			Tracer:        noop.NewTracerProvider().Tracer("player_handler_tests"),
			PlayerMetrics: playermetrics.NewNoop(),
		},
	}

	publisher, err := eventbus.NewPublisher(env.Config.NATS.URL, logger)
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}

	router := chi.NewRouter()
	module, err := player.NewPlayerModule(env.Ctx, env.Config, obs, publisher, router, env.DB)
	if err != nil {
		t.Fatalf("Failed to create player module: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = module.Close()
		_ = publisher.Close()
	})

	return HandlerTestDeps{
		Ctx:       env.Ctx,
		Env:       env,
		Server:    server,
		Generator: testutils.NewTestDataGenerator(),
	}
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
