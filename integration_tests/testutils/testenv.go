package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	natsmodule "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bettercodepaul/Skat/config"
	"github.com/bettercodepaul/Skat/db/bundb"
	"github.com/bettercodepaul/Skat/integration_tests/containers"
)

// TestEnvironment holds all resources needed for integration testing.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *natsmodule.NATSContainer
	DB            *bun.DB
	NatsConn      *nats.Conn
	Config        *config.Config
}

// NewTestEnvironment starts Postgres and NATS, connects to both and applies
// every module migration.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	if testing.Short() {
		t.Skip("integration tests need docker; skipped in -short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bundb.BunDB(sqlDB)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bundb.RunMigrations(ctx, env.DB, discard); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	natsConn, err := nats.Connect(natsURL, nats.Timeout(10*time.Second))
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	env.NatsConn = natsConn

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			RateLimit:      1000,
			RateBurst:      1000,
		},
		NATS: config.NATSConfig{URL: natsURL},
		Observability: config.ObservabilityConfig{
			ServiceName: "skat-integration",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Players: config.PlayersConfig{DefaultPageSize: 50, MaxPageSize: 200},
	}

	return env, nil
}

// Reset empties every player directory table.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanPlayerIntegrationTables(ctx, env.DB)
}

// Cleanup tears down all resources created for testing.
func (env *TestEnvironment) Cleanup() {
	log.Println("Cleaning up test environment...")
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.NatsConn != nil {
		env.NatsConn.Close()
	}
	if env.DB != nil {
		env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
	log.Println("Cleanup complete.")
}
