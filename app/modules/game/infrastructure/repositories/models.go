package gamedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Game represents one played game. Every player slot is optional.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Player1ID     *uuid.UUID `bun:"player1_id,type:uuid"`
	Player2ID     *uuid.UUID `bun:"player2_id,type:uuid"`
	Player3ID     *uuid.UUID `bun:"player3_id,type:uuid"`
	MainPlayerID  *uuid.UUID `bun:"main_player_id,type:uuid"`
	BidValue      *int       `bun:"bid_value"`
	Score         *int       `bun:"score"`
	PlayedAt      time.Time  `bun:"played_at,notnull"`
}

// Slot names one of the four player references of a game.
type Slot string

const (
	SlotPlayer1    Slot = "player1"
	SlotPlayer2    Slot = "player2"
	SlotPlayer3    Slot = "player3"
	SlotMainPlayer Slot = "main_player"
)

// Slots lists every player reference of a game in nullification order.
var Slots = []Slot{SlotPlayer1, SlotPlayer2, SlotPlayer3, SlotMainPlayer}

// Column returns the column backing the slot.
func (s Slot) Column() (string, error) {
	switch s {
	case SlotPlayer1, SlotPlayer2, SlotPlayer3, SlotMainPlayer:
		return string(s) + "_id", nil
	default:
		return "", fmt.Errorf("unknown game slot %q", string(s))
	}
}
