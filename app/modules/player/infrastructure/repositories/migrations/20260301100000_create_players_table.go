package playermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					first_name VARCHAR(50) NOT NULL,
					last_name VARCHAR(50) NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			// Resolves concurrent creates of the same name; the loser gets 23505.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS players_first_last_name_uq
					ON players (lower(first_name), lower(last_name));
				CREATE INDEX IF NOT EXISTS idx_players_last_first_name
					ON players (last_name COLLATE "C", first_name COLLATE "C", id);
			`); err != nil {
				return fmt.Errorf("failed to create players indexes: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS players;`); err != nil {
			return fmt.Errorf("failed to drop players table: %w", err)
		}
		return nil
	})
}
