package playerservice

import (
	"context"

	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	"github.com/google/uuid"
)

// Service is the player directory consumed by the HTTP layer.
//
// Domain failures are returned as *FieldError values wrapping ErrNotFound,
// ErrConflict or ErrInvalidInput. Any other error is an infrastructure error.
type Service interface {
	// ListPlayers returns one page of players with their current score.
	ListPlayers(ctx context.Context, offset, pageSize int, sort playertypes.SortMode) (*playertypes.PlayerPage, error)

	// CreatePlayer adds a player. Names are trimmed before use.
	CreatePlayer(ctx context.Context, firstName, lastName string) (*playertypes.PlayerInfo, error)

	// UpdatePlayer renames a player. Names are trimmed before use.
	UpdatePlayer(ctx context.Context, id uuid.UUID, firstName, lastName string) (*playertypes.PlayerInfo, error)

	// DeletePlayer removes a player. Without force a referenced player is
	// kept; with force every game and score reference is cleared first.
	DeletePlayer(ctx context.Context, id uuid.UUID, force bool) error
}
