package scoredb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the score snapshot store. It is read by the player
// directory; snapshots are written only by seeding and tests.
type Repository interface {
	// FindLatestSnapshotsForPlayers returns at most one snapshot per requested
	// player: the one with the highest sequence index.
	FindLatestSnapshotsForPlayers(ctx context.Context, db bun.IDB, playerIDs []uuid.UUID) ([]ScoreSnapshot, error)

	// ExistsByPlayerID reports whether any snapshot references playerID.
	ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error)

	// NullifyPlayerReferences clears the player reference of every snapshot
	// owned by playerID and returns the number of snapshots changed.
	NullifyPlayerReferences(ctx context.Context, db bun.IDB, playerID uuid.UUID) (int64, error)

	// Create inserts a snapshot.
	Create(ctx context.Context, db bun.IDB, snapshot *ScoreSnapshot) error

	// FindByID retrieves a snapshot.
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*ScoreSnapshot, error)
}
