package playerdb

import (
	"context"

	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for player persistence.
// Every method accepts an optional bun.IDB; nil falls back to the repository's
// own connection so callers can opt into a transaction.
//
// Error semantics:
//   - FindByID, LockByID and Delete return ErrNotFound when the player does not exist.
//   - Save returns ErrDuplicateName when the case-insensitive name index rejects
//     the write and ErrNoRowsAffected when an update matched no row.
//   - Everything else is a wrapped infrastructure error.
type Repository interface {
	// ExistsByNameCaseInsensitive reports whether any player has the given name pair, ignoring case.
	ExistsByNameCaseInsensitive(ctx context.Context, db bun.IDB, firstName, lastName string) (bool, error)

	// ExistsByNameCaseInsensitiveExcludingID is ExistsByNameCaseInsensitive ignoring the player with id.
	ExistsByNameCaseInsensitiveExcludingID(ctx context.Context, db bun.IDB, firstName, lastName string, id uuid.UUID) (bool, error)

	// FindByID retrieves a player.
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error)

	// LockByID retrieves a player and locks its row until the surrounding transaction ends.
	LockByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error)

	// Save inserts a player with a nil ID and updates the names of any other.
	Save(ctx context.Context, db bun.IDB, player *Player) (*Player, error)

	// Delete removes a player row.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// Count returns the number of players.
	Count(ctx context.Context, db bun.IDB) (int, error)

	// FindPage returns at most limit players starting at offset in the order of sort.
	FindPage(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]Player, error)
}
