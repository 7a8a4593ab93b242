package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new player repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ExistsByNameCaseInsensitive(ctx context.Context, db bun.IDB, firstName, lastName string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Player)(nil)).
		Where("lower(first_name) = lower(?)", firstName).
		Where("lower(last_name) = lower(?)", lastName).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check player name: %w", err)
	}
	return exists, nil
}

func (r *Impl) ExistsByNameCaseInsensitiveExcludingID(ctx context.Context, db bun.IDB, firstName, lastName string, id uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Player)(nil)).
		Where("lower(first_name) = lower(?)", firstName).
		Where("lower(last_name) = lower(?)", lastName).
		Where("id <> ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check player name excluding %s: %w", id, err)
	}
	return exists, nil
}

func (r *Impl) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return player, nil
}

func (r *Impl) LockByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock player: %w", err)
	}
	return player, nil
}

func (r *Impl) Save(ctx context.Context, db bun.IDB, player *Player) (*Player, error) {
	db = r.resolveDB(db)
	now := time.Now().UTC()

	if player.ID == uuid.Nil {
		player.ID = uuid.New()
		player.CreatedAt = now
		player.UpdatedAt = now
		if _, err := db.NewInsert().Model(player).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("failed to insert player: %w", ErrDuplicateName)
			}
			return nil, fmt.Errorf("failed to insert player: %w", err)
		}
		return player, nil
	}

	player.UpdatedAt = now
	res, err := db.NewUpdate().
		Model(player).
		Column("first_name", "last_name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to update player: %w", ErrDuplicateName)
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrNoRowsAffected
	}
	return player, nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) Count(ctx context.Context, db bun.IDB) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().Model((*Player)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// FindPage orders at the database so offsets stay stable between pages.
// Names compare byte-wise and the id breaks remaining ties.
func (r *Impl) FindPage(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]Player, error) {
	db = r.resolveDB(db)
	players := make([]Player, 0, limit)

	q := db.NewSelect().Model(&players)

	switch sort {
	case playertypes.SortByName:
	case playertypes.SortByScoreDesc:
		latest := db.NewSelect().
			TableExpr("player_scores").
			DistinctOn("player_id").
			ColumnExpr("player_id, total_points").
			Where("player_id IS NOT NULL").
			OrderExpr("player_id, sequence_index DESC")
		q = q.Join("LEFT JOIN (?) AS latest ON latest.player_id = p.id", latest).
			OrderExpr("COALESCE(latest.total_points, 0) DESC")
	default:
		return nil, fmt.Errorf("unsupported sort mode %s", sort)
	}

	err := q.
		OrderExpr(`p.last_name COLLATE "C" ASC`).
		OrderExpr(`p.first_name COLLATE "C" ASC`).
		OrderExpr("p.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player page: %w", err)
	}
	return players, nil
}
