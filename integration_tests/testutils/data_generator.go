package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TestDataGenerator provides methods to create test data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	used  map[string]struct{}
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
		used:  map[string]struct{}{},
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GeneratePlayers returns count players with distinct case-insensitive names.
// IDs are left empty for the repository to assign.
func (g *TestDataGenerator) GeneratePlayers(count int) []playerdb.Player {
	players := make([]playerdb.Player, 0, count)
	for len(players) < count {
		first, last := g.faker.FirstName(), g.faker.LastName()
		key := strings.ToLower(first + "\x00" + last)
		if _, ok := g.used[key]; ok {
			continue
		}
		g.used[key] = struct{}{}
		players = append(players, playerdb.Player{FirstName: first, LastName: last})
	}
	return players
}

// InsertPlayers saves count generated players.
func (g *TestDataGenerator) InsertPlayers(ctx context.Context, db bun.IDB, count int) ([]playerdb.Player, error) {
	repo := playerdb.NewRepository(db)
	players := g.GeneratePlayers(count)
	for i := range players {
		if _, err := repo.Save(ctx, db, &players[i]); err != nil {
			return nil, fmt.Errorf("failed to insert player %d: %w", i, err)
		}
	}
	return players, nil
}

// GameSlots names the player of each slot; nil leaves the slot empty.
type GameSlots struct {
	Player1    *uuid.UUID
	Player2    *uuid.UUID
	Player3    *uuid.UUID
	MainPlayer *uuid.UUID
}

// InsertGame saves a game with the given slots and a random bid.
func (g *TestDataGenerator) InsertGame(ctx context.Context, db bun.IDB, slots GameSlots) (*gamedb.Game, error) {
	bid := g.faker.Number(18, 60)
	score := bid
	game := &gamedb.Game{
		Player1ID:    slots.Player1,
		Player2ID:    slots.Player2,
		Player3ID:    slots.Player3,
		MainPlayerID: slots.MainPlayer,
		BidValue:     &bid,
		Score:        &score,
		PlayedAt:     g.faker.PastDate().UTC(),
	}
	if err := gamedb.NewRepository(db).Create(ctx, db, game); err != nil {
		return nil, err
	}
	return game, nil
}

// InsertSnapshot saves a score snapshot of playerID for gameID.
func (g *TestDataGenerator) InsertSnapshot(ctx context.Context, db bun.IDB, playerID, gameID uuid.UUID, seq, points int) (*scoredb.ScoreSnapshot, error) {
	snap := &scoredb.ScoreSnapshot{
		PlayerID:      &playerID,
		GameID:        gameID,
		SequenceIndex: seq,
		TotalPoints:   points,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := scoredb.NewRepository(db).Create(ctx, db, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
