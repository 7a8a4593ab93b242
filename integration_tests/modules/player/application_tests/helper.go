package playerintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/integration_tests/testutils"
	playermetrics "github.com/bettercodepaul/Skat/internal/observability/metrics/player"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx       context.Context
	BunDB     *bun.DB
	Players   playerdb.Repository
	Games     gamedb.Repository
	Scores    scoredb.Repository
	Service   *playerservice.PlayerService
	Generator *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker; skipped in -short mode")
	}

	testEnvOnce.Do(func() {
		log.Println("Initializing player test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
		} else {
			testEnv = env
		}
	})

	if testEnvErr != nil {
		t.Fatalf("Player test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Player test environment not initialized")
	}
	return testEnv
}

func SetupTestPlayerService(t *testing.T) TestDeps {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	players := playerdb.NewRepository(env.DB)
	games := gamedb.NewRepository(env.DB)
	scores := scoredb.NewRepository(env.DB)

	service := playerservice.NewPlayerService(
		players,
		games,
		scores,
		nil, // events are covered by the handler tests
		testLogger,
		playermetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test_player_service"),
		env.DB,
	)

	gen := testutils.NewTestDataGenerator()
	t.Logf("data generator seed: %d", gen.Seed())

	return TestDeps{
		Ctx:       env.Ctx,
		BunDB:     env.DB,
		Players:   players,
		Games:     games,
		Scores:    scores,
		Service:   service,
		Generator: gen,
	}
}

// testWriter wraps a testing.T to implement io.Writer for slog
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
