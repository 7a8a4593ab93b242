package gamedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game persistence used by the player
// directory. Games are written only by seeding and tests.
type Repository interface {
	// ExistsByPlayerID reports whether any slot of any game references playerID.
	ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error)

	// NullifySlot clears slot in every game where it references playerID and
	// returns the number of games changed.
	NullifySlot(ctx context.Context, db bun.IDB, slot Slot, playerID uuid.UUID) (int64, error)

	// Create inserts a game.
	Create(ctx context.Context, db bun.IDB, game *Game) error

	// FindByID retrieves a game.
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Game, error)
}
