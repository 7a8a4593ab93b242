package scoredb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScoreSnapshot is a player's running point total after a game. For one
// player the snapshot with the highest sequence index is current.
type ScoreSnapshot struct {
	bun.BaseModel `bun:"table:player_scores,alias:ps"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	PlayerID      *uuid.UUID `bun:"player_id,type:uuid"`
	GameID        uuid.UUID  `bun:"game_id,type:uuid,notnull"`
	SequenceIndex int        `bun:"sequence_index,notnull"`
	TotalPoints   int        `bun:"total_points,notnull"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
