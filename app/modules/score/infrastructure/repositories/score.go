package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score snapshot repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// FindLatestSnapshotsForPlayers touches only the snapshots of the requested
// players, so its cost follows the page size rather than the table size.
func (r *Impl) FindLatestSnapshotsForPlayers(ctx context.Context, db bun.IDB, playerIDs []uuid.UUID) ([]ScoreSnapshot, error) {
	if len(playerIDs) == 0 {
		return []ScoreSnapshot{}, nil
	}

	db = r.resolveDB(db)
	var snapshots []ScoreSnapshot
	err := db.NewSelect().
		Model(&snapshots).
		DistinctOn("ps.player_id").
		Where("ps.player_id IN (?)", bun.In(playerIDs)).
		OrderExpr("ps.player_id, ps.sequence_index DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest score snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *Impl) ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*ScoreSnapshot)(nil)).
		Where("player_id = ?", playerID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check score references: %w", err)
	}
	return exists, nil
}

func (r *Impl) NullifyPlayerReferences(ctx context.Context, db bun.IDB, playerID uuid.UUID) (int64, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*ScoreSnapshot)(nil)).
		Set("player_id = NULL").
		Where("player_id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear score references: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, snapshot *ScoreSnapshot) error {
	db = r.resolveDB(db)
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(snapshot).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert score snapshot: %w", err)
	}
	return nil
}

func (r *Impl) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*ScoreSnapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(ScoreSnapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score snapshot by id: %w", err)
	}
	return snapshot, nil
}
