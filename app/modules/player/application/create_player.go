package playerservice

import (
	"context"
	"errors"
	"fmt"

	playerevents "github.com/bettercodepaul/Skat/app/modules/player/domain/events"
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/uptrace/bun"
)

// CreatePlayer adds a player whose trimmed name pair is not taken yet.
func (s *PlayerService) CreatePlayer(ctx context.Context, firstName, lastName string) (*playertypes.PlayerInfo, error) {
	var created *playerdb.Player

	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*playertypes.PlayerInfo, error], error) {
		result, player, err := s.createPlayerLogic(ctx, db, firstName, lastName)
		created = player
		return result, err
	}

	result, err := withTelemetry(s, ctx, "CreatePlayer", "new_player", func(ctx context.Context) (results.OperationResult[*playertypes.PlayerInfo, error], error) {
		return runInTx(s, ctx, nil, createTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	s.publish(ctx, playerevents.PlayerCreatedV1, playerevents.PlayerCreatedPayloadV1{
		PlayerID:  created.ID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		CreatedAt: created.CreatedAt,
	})
	return *result.Success, nil
}

func (s *PlayerService) createPlayerLogic(ctx context.Context, db bun.IDB, firstName, lastName string) (results.OperationResult[*playertypes.PlayerInfo, error], *playerdb.Player, error) {
	first, last, failure := normalizeNames(firstName, lastName)
	if failure != nil {
		return results.FailureResult[*playertypes.PlayerInfo, error](failure), nil, nil
	}

	exists, err := s.players.ExistsByNameCaseInsensitive(ctx, db, first, last)
	if err != nil {
		return results.OperationResult[*playertypes.PlayerInfo, error]{}, nil, fmt.Errorf("failed to check name: %w", err)
	}
	if exists {
		return results.FailureResult[*playertypes.PlayerInfo, error](duplicateName()), nil, nil
	}

	player, err := s.players.Save(ctx, db, &playerdb.Player{FirstName: first, LastName: last})
	if err != nil {
		// A concurrent create won the race for the unique index.
		if errors.Is(err, playerdb.ErrDuplicateName) {
			return results.FailureResult[*playertypes.PlayerInfo, error](duplicateName()), nil, nil
		}
		return results.OperationResult[*playertypes.PlayerInfo, error]{}, nil, fmt.Errorf("failed to save player: %w", err)
	}

	return results.SuccessResult[*playertypes.PlayerInfo, error](toPlayerInfo(player)), player, nil
}

func toPlayerInfo(p *playerdb.Player) *playertypes.PlayerInfo {
	return &playertypes.PlayerInfo{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}
