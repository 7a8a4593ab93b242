// Package playerevents defines the topics and payloads published after
// player directory changes commit.
package playerevents

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlayerCreatedV1 = "player.created.v1"
	PlayerUpdatedV1 = "player.updated.v1"
	PlayerDeletedV1 = "player.deleted.v1"
)

// PlayerCreatedPayloadV1 is published after a player is created.
type PlayerCreatedPayloadV1 struct {
	PlayerID  uuid.UUID `json:"player_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerUpdatedPayloadV1 is published after a player is renamed.
type PlayerUpdatedPayloadV1 struct {
	PlayerID  uuid.UUID `json:"player_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerDeletedPayloadV1 is published after a player is deleted. The counts
// are only non-zero for forced deletions.
type PlayerDeletedPayloadV1 struct {
	PlayerID         uuid.UUID `json:"player_id"`
	Forced           bool      `json:"forced"`
	GameSlotsCleared int64     `json:"game_slots_cleared"`
	ScoreRefsCleared int64     `json:"score_refs_cleared"`
	DeletedAt        time.Time `json:"deleted_at"`
}
