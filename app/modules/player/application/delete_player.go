package playerservice

import (
	"context"
	"errors"
	"fmt"

	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playerevents "github.com/bettercodepaul/Skat/app/modules/player/domain/events"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// deleteOutcome summarises a successful deletion.
type deleteOutcome struct {
	Forced           bool
	GameSlotsCleared int64
	ScoreRefsCleared int64
}

// DeletePlayer removes a player. The reference checks, any nullification and
// the delete itself share one transaction with the player row locked, so
// either all of it takes effect or none of it does.
func (s *PlayerService) DeletePlayer(ctx context.Context, id uuid.UUID, force bool) error {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[deleteOutcome, error], error) {
		return s.deletePlayerLogic(ctx, db, id, force)
	}

	result, err := withTelemetry(s, ctx, "DeletePlayer", id.String(), func(ctx context.Context) (results.OperationResult[deleteOutcome, error], error) {
		return runInTx(s, ctx, nil, deleteTx)
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}

	outcome := *result.Success
	if s.metrics != nil {
		s.metrics.RecordPlayerDeleted(ctx, outcome.Forced)
	}
	s.publish(ctx, playerevents.PlayerDeletedV1, playerevents.PlayerDeletedPayloadV1{
		PlayerID:         id,
		Forced:           outcome.Forced,
		GameSlotsCleared: outcome.GameSlotsCleared,
		ScoreRefsCleared: outcome.ScoreRefsCleared,
		DeletedAt:        s.now().UTC(),
	})
	return nil
}

func (s *PlayerService) deletePlayerLogic(ctx context.Context, db bun.IDB, id uuid.UUID, force bool) (results.OperationResult[deleteOutcome, error], error) {
	// The row lock also blocks inserts of new references until commit.
	if _, err := s.players.LockByID(ctx, db, id); err != nil {
		if errors.Is(err, playerdb.ErrNotFound) {
			return results.FailureResult[deleteOutcome, error](playerNotFound()), nil
		}
		return results.OperationResult[deleteOutcome, error]{}, fmt.Errorf("failed to load player: %w", err)
	}

	outcome := deleteOutcome{Forced: force}

	if force {
		for _, slot := range gamedb.Slots {
			n, err := s.games.NullifySlot(ctx, db, slot, id)
			if err != nil {
				return results.OperationResult[deleteOutcome, error]{}, fmt.Errorf("failed to clear game slot %s: %w", slot, err)
			}
			outcome.GameSlotsCleared += n
		}

		n, err := s.scores.NullifyPlayerReferences(ctx, db, id)
		if err != nil {
			return results.OperationResult[deleteOutcome, error]{}, fmt.Errorf("failed to clear score references: %w", err)
		}
		outcome.ScoreRefsCleared = n
	} else {
		referenced, err := s.isReferenced(ctx, db, id)
		if err != nil {
			return results.OperationResult[deleteOutcome, error]{}, err
		}
		if referenced {
			return results.FailureResult[deleteOutcome, error](playerReferenced()), nil
		}
	}

	if err := s.players.Delete(ctx, db, id); err != nil {
		if errors.Is(err, playerdb.ErrNotFound) {
			return results.FailureResult[deleteOutcome, error](playerNotFound()), nil
		}
		return results.OperationResult[deleteOutcome, error]{}, fmt.Errorf("failed to delete player: %w", err)
	}

	return results.SuccessResult[deleteOutcome, error](outcome), nil
}

func (s *PlayerService) isReferenced(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error) {
	inGames, err := s.games.ExistsByPlayerID(ctx, db, id)
	if err != nil {
		return false, fmt.Errorf("failed to check game references: %w", err)
	}
	if inGames {
		return true, nil
	}

	inScores, err := s.scores.ExistsByPlayerID(ctx, db, id)
	if err != nil {
		return false, fmt.Errorf("failed to check score references: %w", err)
	}
	return inScores, nil
}
