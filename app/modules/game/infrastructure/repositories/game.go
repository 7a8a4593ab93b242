package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Game)(nil)).
		WhereOr("player1_id = ?", playerID).
		WhereOr("player2_id = ?", playerID).
		WhereOr("player3_id = ?", playerID).
		WhereOr("main_player_id = ?", playerID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check game references: %w", err)
	}
	return exists, nil
}

func (r *Impl) NullifySlot(ctx context.Context, db bun.IDB, slot Slot, playerID uuid.UUID) (int64, error) {
	column, err := slot.Column()
	if err != nil {
		return 0, err
	}

	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Game)(nil)).
		Set("? = NULL", bun.Ident(column)).
		Where("? = ?", bun.Ident(column), playerID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s references: %w", slot, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *Impl) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return game, nil
}
