package main

import (
	"context"
	"fmt"
	"time"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

// bidValues are the legal Skat bids.
var bidValues = []int{18, 20, 22, 23, 24, 27, 30, 33, 35, 36, 40, 44, 45, 46, 48, 50, 54, 55, 59, 60}

func newSeedCommand(db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert random players, games and score snapshots",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "players", Value: 20, Usage: "number of players"},
			&cli.IntFlag{Name: "games", Value: 50, Usage: "number of games"},
			&cli.Uint64Flag{Name: "seed", Value: 0, Usage: "random seed, 0 for a random one"},
		},
		Action: func(c *cli.Context) error {
			faker := gofakeit.New(c.Uint64("seed"))
			s := seeder{
				faker:   faker,
				players: playerdb.NewRepository(db),
				games:   gamedb.NewRepository(db),
				scores:  scoredb.NewRepository(db),
			}
			return db.RunInTx(c.Context, nil, func(ctx context.Context, tx bun.Tx) error {
				return s.run(ctx, tx, c.Int("players"), c.Int("games"))
			})
		},
	}
}

type seeder struct {
	faker   *gofakeit.Faker
	players playerdb.Repository
	games   gamedb.Repository
	scores  scoredb.Repository
}

type standing struct {
	seq    int
	points int
}

func (s seeder) run(ctx context.Context, tx bun.IDB, playerCount, gameCount int) error {
	if playerCount < 3 && gameCount > 0 {
		return fmt.Errorf("a game needs three players, got %d", playerCount)
	}

	ids := make([]uuid.UUID, 0, playerCount)
	for len(ids) < playerCount {
		first, last := s.faker.FirstName(), s.faker.LastName()
		// A unique violation would abort the transaction, so check first.
		taken, err := s.players.ExistsByNameCaseInsensitive(ctx, tx, first, last)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		p, err := s.players.Save(ctx, tx, &playerdb.Player{FirstName: first, LastName: last})
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}
	fmt.Printf("Seeded %d players\n", len(ids))

	standings := make(map[uuid.UUID]*standing, len(ids))
	playedAt := time.Now().UTC().Add(-time.Duration(gameCount) * time.Hour)

	for range gameCount {
		table := s.pickThree(ids)
		declarer := table[s.faker.Number(0, 2)]
		bid := bidValues[s.faker.Number(0, len(bidValues)-1)]
		score := bid
		if s.faker.Bool() {
			score = -2 * bid
		}

		game := &gamedb.Game{
			Player1ID:    &table[0],
			Player2ID:    &table[1],
			Player3ID:    &table[2],
			MainPlayerID: &declarer,
			BidValue:     &bid,
			Score:        &score,
			PlayedAt:     playedAt,
		}
		if err := s.games.Create(ctx, tx, game); err != nil {
			return err
		}

		for _, id := range table {
			st, ok := standings[id]
			if !ok {
				st = &standing{}
				standings[id] = st
			}
			st.seq++
			if id == declarer {
				st.points += score
			}
			playerID := id
			if err := s.scores.Create(ctx, tx, &scoredb.ScoreSnapshot{
				PlayerID:      &playerID,
				GameID:        game.ID,
				SequenceIndex: st.seq,
				TotalPoints:   st.points,
				CreatedAt:     playedAt,
			}); err != nil {
				return err
			}
		}
		playedAt = playedAt.Add(time.Hour)
	}
	fmt.Printf("Seeded %d games\n", gameCount)
	return nil
}

func (s seeder) pickThree(ids []uuid.UUID) [3]uuid.UUID {
	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)
	s.faker.ShuffleAnySlice(shuffled)
	return [3]uuid.UUID{shuffled[0], shuffled[1], shuffled[2]}
}
