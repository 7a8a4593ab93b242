package playerservice

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/bettercodepaul/Skat/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// listTxOptions gives the page query and the count the same snapshot.
var listTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// ListPlayers returns a page of players merged with their current scores.
func (s *PlayerService) ListPlayers(ctx context.Context, offset, pageSize int, sort playertypes.SortMode) (*playertypes.PlayerPage, error) {
	listTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*playertypes.PlayerPage, error], error) {
		return s.listPlayersLogic(ctx, db, offset, pageSize, sort)
	}

	identifier := fmt.Sprintf("offset=%d size=%d sort=%s", offset, pageSize, sort)
	result, err := withTelemetry(s, ctx, "ListPlayers", identifier, func(ctx context.Context) (results.OperationResult[*playertypes.PlayerPage, error], error) {
		if failure := s.validatePaging(offset, pageSize, sort); failure != nil {
			return results.FailureResult[*playertypes.PlayerPage, error](failure), nil
		}
		return runInTx(s, ctx, listTxOptions, listTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *PlayerService) validatePaging(offset, pageSize int, sort playertypes.SortMode) *FieldError {
	switch {
	case offset < 0:
		return invalidInput(FieldOffset, "startIndex must not be negative")
	case pageSize < 1:
		return invalidInput(FieldPageSize, "pageSize must be at least 1")
	case pageSize > s.maxPageSize:
		return invalidInput(FieldPageSize, fmt.Sprintf("pageSize must not exceed %d", s.maxPageSize))
	case !sort.IsValid():
		return invalidInput(FieldSort, fmt.Sprintf("unsupported sort %s", sort))
	}
	return nil
}

func (s *PlayerService) listPlayersLogic(ctx context.Context, db bun.IDB, offset, pageSize int, sort playertypes.SortMode) (results.OperationResult[*playertypes.PlayerPage, error], error) {
	players, err := s.players.FindPage(ctx, db, offset, pageSize, sort)
	if err != nil {
		return results.OperationResult[*playertypes.PlayerPage, error]{}, fmt.Errorf("failed to load players: %w", err)
	}

	total, err := s.players.Count(ctx, db)
	if err != nil {
		return results.OperationResult[*playertypes.PlayerPage, error]{}, fmt.Errorf("failed to count players: %w", err)
	}

	var snapshots []scoredb.ScoreSnapshot
	if len(players) > 0 {
		ids := make([]uuid.UUID, len(players))
		for i, p := range players {
			ids[i] = p.ID
		}
		snapshots, err = s.scores.FindLatestSnapshotsForPlayers(ctx, db, ids)
		if err != nil {
			return results.OperationResult[*playertypes.PlayerPage, error]{}, fmt.Errorf("failed to load current scores: %w", err)
		}
	}

	items := buildPlayerViews(players, snapshots, s.now())
	sortPlayerViews(items, sort)

	return results.SuccessResult[*playertypes.PlayerPage, error](&playertypes.PlayerPage{
		Items:      items,
		TotalCount: total,
		Offset:     offset,
		PageSize:   pageSize,
		Sort:       sort,
	}), nil
}

// buildPlayerViews pairs every player with its snapshot. Players without one
// get zero points, sequence zero and the query time.
func buildPlayerViews(players []playerdb.Player, snapshots []scoredb.ScoreSnapshot, now time.Time) []playertypes.PlayerView {
	latest := make(map[uuid.UUID]scoredb.ScoreSnapshot, len(snapshots))
	for _, snap := range snapshots {
		if snap.PlayerID == nil {
			continue
		}
		if cur, ok := latest[*snap.PlayerID]; ok && cur.SequenceIndex >= snap.SequenceIndex {
			continue
		}
		latest[*snap.PlayerID] = snap
	}

	views := make([]playertypes.PlayerView, 0, len(players))
	for _, p := range players {
		view := playertypes.PlayerView{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			UpdatedAt: now,
		}
		if snap, ok := latest[p.ID]; ok {
			view.CurrentTotalPoints = snap.TotalPoints
			view.CurrentSequenceIndex = snap.SequenceIndex
			view.UpdatedAt = snap.CreatedAt
		}
		views = append(views, view)
	}
	return views
}

func compareByName(a, b playertypes.PlayerView) int {
	return cmp.Or(
		strings.Compare(a.LastName, b.LastName),
		strings.Compare(a.FirstName, b.FirstName),
	)
}

// sortPlayerViews applies the final in-memory ordering of a page.
func sortPlayerViews(views []playertypes.PlayerView, sort playertypes.SortMode) {
	switch sort {
	case playertypes.SortByScoreDesc:
		slices.SortStableFunc(views, func(a, b playertypes.PlayerView) int {
			return cmp.Or(
				cmp.Compare(b.CurrentTotalPoints, a.CurrentTotalPoints),
				compareByName(a, b),
			)
		})
	default:
		slices.SortStableFunc(views, compareByName)
	}
}
