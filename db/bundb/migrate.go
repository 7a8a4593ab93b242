package bundb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	gamemigrations "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories/migrations"
	playermigrations "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories/migrations"
	scoremigrations "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories/migrations"
)

// ModuleMigrator pairs a module name with its migrator.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module in foreign key order: games and
// scores reference players, scores reference games.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{Name: "player", Migrator: migrate.NewMigrator(db, playermigrations.Migrations)},
		{Name: "game", Migrator: migrate.NewMigrator(db, gamemigrations.Migrations)},
		{Name: "score", Migrator: migrate.NewMigrator(db, scoremigrations.Migrations)},
	}
}

// RunMigrations creates the migration tables and applies every pending
// module migration.
func RunMigrations(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)

	// All modules share the bun_migrations table, so one Init is enough.
	if err := migrators[0].Migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, m := range migrators {
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", slog.String("module", m.Name))
		} else {
			logger.InfoContext(ctx, "Migrated module", slog.String("module", m.Name), slog.String("group", group.String()))
		}
	}
	return nil
}
