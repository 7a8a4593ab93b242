package playerservice

import (
	"context"
	"errors"
	"fmt"

	playerevents "github.com/bettercodepaul/Skat/app/modules/player/domain/events"
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UpdatePlayer renames a player. Keeping the current name is not a conflict.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id uuid.UUID, firstName, lastName string) (*playertypes.PlayerInfo, error) {
	var updated *playerdb.Player

	updateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*playertypes.PlayerInfo, error], error) {
		result, player, err := s.updatePlayerLogic(ctx, db, id, firstName, lastName)
		updated = player
		return result, err
	}

	result, err := withTelemetry(s, ctx, "UpdatePlayer", id.String(), func(ctx context.Context) (results.OperationResult[*playertypes.PlayerInfo, error], error) {
		return runInTx(s, ctx, nil, updateTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	s.publish(ctx, playerevents.PlayerUpdatedV1, playerevents.PlayerUpdatedPayloadV1{
		PlayerID:  updated.ID,
		FirstName: updated.FirstName,
		LastName:  updated.LastName,
		UpdatedAt: updated.UpdatedAt,
	})
	return *result.Success, nil
}

func (s *PlayerService) updatePlayerLogic(ctx context.Context, db bun.IDB, id uuid.UUID, firstName, lastName string) (results.OperationResult[*playertypes.PlayerInfo, error], *playerdb.Player, error) {
	first, last, failure := normalizeNames(firstName, lastName)
	if failure != nil {
		return results.FailureResult[*playertypes.PlayerInfo, error](failure), nil, nil
	}

	player, err := s.players.FindByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, playerdb.ErrNotFound) {
			return results.FailureResult[*playertypes.PlayerInfo, error](playerNotFound()), nil, nil
		}
		return results.OperationResult[*playertypes.PlayerInfo, error]{}, nil, fmt.Errorf("failed to load player: %w", err)
	}

	taken, err := s.players.ExistsByNameCaseInsensitiveExcludingID(ctx, db, first, last, id)
	if err != nil {
		return results.OperationResult[*playertypes.PlayerInfo, error]{}, nil, fmt.Errorf("failed to check name: %w", err)
	}
	if taken {
		return results.FailureResult[*playertypes.PlayerInfo, error](duplicateName()), nil, nil
	}

	player.FirstName = first
	player.LastName = last
	saved, err := s.players.Save(ctx, db, player)
	if err != nil {
		switch {
		case errors.Is(err, playerdb.ErrDuplicateName):
			return results.FailureResult[*playertypes.PlayerInfo, error](duplicateName()), nil, nil
		case errors.Is(err, playerdb.ErrNoRowsAffected):
			// Deleted concurrently between the read and the write.
			return results.FailureResult[*playertypes.PlayerInfo, error](playerNotFound()), nil, nil
		}
		return results.OperationResult[*playertypes.PlayerInfo, error]{}, nil, fmt.Errorf("failed to save player: %w", err)
	}

	return results.SuccessResult[*playertypes.PlayerInfo, error](toPlayerInfo(saved)), saved, nil
}
