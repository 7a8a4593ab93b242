package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			// Player references never cascade; deleting a player clears them explicitly.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					player1_id UUID REFERENCES players(id),
					player2_id UUID REFERENCES players(id),
					player3_id UUID REFERENCES players(id),
					main_player_id UUID REFERENCES players(id),
					bid_value INTEGER,
					score INTEGER,
					played_at TIMESTAMPTZ NOT NULL
				);
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_games_player1_id ON games(player1_id);
				CREATE INDEX IF NOT EXISTS idx_games_player2_id ON games(player2_id);
				CREATE INDEX IF NOT EXISTS idx_games_player3_id ON games(player3_id);
				CREATE INDEX IF NOT EXISTS idx_games_main_player_id ON games(main_player_id);
				CREATE INDEX IF NOT EXISTS idx_games_played_at ON games(played_at);
			`); err != nil {
				return fmt.Errorf("failed to create games indexes: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping games table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS games;`); err != nil {
			return fmt.Errorf("failed to drop games table: %w", err)
		}
		return nil
	})
}
