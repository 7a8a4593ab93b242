package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating player_scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS player_scores (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					player_id UUID REFERENCES players(id),
					game_id UUID NOT NULL REFERENCES games(id),
					sequence_index INTEGER NOT NULL,
					total_points INTEGER NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create player_scores table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_player_scores_game_id ON player_scores(game_id);
				CREATE INDEX IF NOT EXISTS idx_player_scores_player_sequence
					ON player_scores(player_id, sequence_index DESC);
			`); err != nil {
				return fmt.Errorf("failed to create player_scores indexes: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping player_scores table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS player_scores;`); err != nil {
			return fmt.Errorf("failed to drop player_scores table: %w", err)
		}
		return nil
	})
}
