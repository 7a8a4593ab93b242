package playerservice

import (
	"context"
	"errors"
	"testing"
	"time"

	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func player(first, last string) playerdb.Player {
	return playerdb.Player{ID: uuid.New(), FirstName: first, LastName: last}
}

func snapshot(p playerdb.Player, seq, points int, at time.Time) scoredb.ScoreSnapshot {
	id := p.ID
	return scoredb.ScoreSnapshot{ID: uuid.New(), PlayerID: &id, GameID: uuid.New(), SequenceIndex: seq, TotalPoints: points, CreatedAt: at}
}

func names(views []playertypes.PlayerView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.FirstName + " " + v.LastName
	}
	return out
}

func TestListPlayers(t *testing.T) {
	anna := player("Anna", "Schmidt")
	bernd := player("Bernd", "Mueller")
	carla := player("Carla", "Mueller")
	dieter := player("Dieter", "Abel")

	scoredAt := time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		offset    int
		pageSize  int
		sort      playertypes.SortMode
		page      []playerdb.Player
		snapshots []scoredb.ScoreSnapshot
		total     int
		wantNames []string
		verify    func(t *testing.T, page *playertypes.PlayerPage)
	}{
		{
			name:      "name sort orders by last then first name",
			pageSize:  10,
			sort:      playertypes.SortByName,
			page:      []playerdb.Player{anna, carla, bernd},
			total:     3,
			wantNames: []string{"Bernd Mueller", "Carla Mueller", "Anna Schmidt"},
		},
		{
			name:     "score sort orders by current points descending",
			pageSize: 10,
			sort:     playertypes.SortByScoreDesc,
			page:     []playerdb.Player{anna, bernd, carla},
			snapshots: []scoredb.ScoreSnapshot{
				snapshot(anna, 3, 100, scoredAt),
				snapshot(bernd, 2, 200, scoredAt),
				snapshot(carla, 4, 150, scoredAt),
			},
			total:     3,
			wantNames: []string{"Bernd Mueller", "Carla Mueller", "Anna Schmidt"},
		},
		{
			name:     "score ties fall back to name",
			pageSize: 10,
			sort:     playertypes.SortByScoreDesc,
			page:     []playerdb.Player{anna, dieter},
			snapshots: []scoredb.ScoreSnapshot{
				snapshot(anna, 1, 50, scoredAt),
				snapshot(dieter, 1, 50, scoredAt),
			},
			total:     2,
			wantNames: []string{"Dieter Abel", "Anna Schmidt"},
		},
		{
			name:      "player without snapshot reports zero points at query time",
			pageSize:  10,
			sort:      playertypes.SortByName,
			page:      []playerdb.Player{dieter},
			total:     1,
			wantNames: []string{"Dieter Abel"},
			verify: func(t *testing.T, page *playertypes.PlayerPage) {
				item := page.Items[0]
				assert.Equal(t, 0, item.CurrentTotalPoints)
				assert.Equal(t, 0, item.CurrentSequenceIndex)
				assert.Equal(t, fixedNow, item.UpdatedAt)
			},
		},
		{
			name:      "highest sequence index wins",
			pageSize:  10,
			sort:      playertypes.SortByName,
			page:      []playerdb.Player{anna},
			snapshots: []scoredb.ScoreSnapshot{snapshot(anna, 7, 70, scoredAt), snapshot(anna, 9, 90, scoredAt.Add(time.Hour))},
			total:     1,
			wantNames: []string{"Anna Schmidt"},
			verify: func(t *testing.T, page *playertypes.PlayerPage) {
				item := page.Items[0]
				assert.Equal(t, 90, item.CurrentTotalPoints)
				assert.Equal(t, 9, item.CurrentSequenceIndex)
				assert.Equal(t, scoredAt.Add(time.Hour), item.UpdatedAt)
			},
		},
		{
			name:      "offset past the end returns empty items and the total",
			offset:    100,
			pageSize:  10,
			sort:      playertypes.SortByName,
			page:      []playerdb.Player{},
			total:     4,
			wantNames: []string{},
			verify: func(t *testing.T, page *playertypes.PlayerPage) {
				assert.Equal(t, 4, page.TotalCount)
				assert.Equal(t, 100, page.Offset)
				assert.NotNil(t, page.Items)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.players.FindPageFunc = func(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]playerdb.Player, error) {
				assert.Equal(t, tt.offset, offset)
				assert.Equal(t, tt.pageSize, limit)
				assert.Equal(t, tt.sort, sort)
				return tt.page, nil
			}
			deps.players.CountFunc = func(ctx context.Context, db bun.IDB) (int, error) {
				return tt.total, nil
			}
			deps.scores.FindLatestSnapshotsForPlayersFunc = func(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]scoredb.ScoreSnapshot, error) {
				assert.Len(t, ids, len(tt.page))
				return tt.snapshots, nil
			}

			page, err := deps.service().ListPlayers(context.Background(), tt.offset, tt.pageSize, tt.sort)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.wantNames, names(page.Items)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.total, page.TotalCount)
			assert.Equal(t, tt.sort, page.Sort)
			if tt.verify != nil {
				tt.verify(t, page)
			}
		})
	}
}

func TestListPlayers_SkipsScoreLookupForEmptyPage(t *testing.T) {
	deps := newTestDeps()

	_, err := deps.service().ListPlayers(context.Background(), 0, 10, playertypes.SortByName)

	require.NoError(t, err)
	assert.Equal(t, []string{"FindPage", "Count"}, deps.players.Trace())
	assert.Empty(t, deps.scores.Trace())
}

func TestListPlayers_Validation(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		pageSize  int
		sort      playertypes.SortMode
		wantField string
	}{
		{name: "negative offset", offset: -1, pageSize: 10, wantField: FieldOffset},
		{name: "zero page size", pageSize: 0, wantField: FieldPageSize},
		{name: "page size above maximum", pageSize: 51, wantField: FieldPageSize},
		{name: "unknown sort", pageSize: 10, sort: playertypes.SortMode(42), wantField: FieldSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()

			_, err := deps.service(WithMaxPageSize(50)).ListPlayers(context.Background(), tt.offset, tt.pageSize, tt.sort)

			require.ErrorIs(t, err, ErrInvalidInput)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Empty(t, deps.players.Trace())
		})
	}
}

func TestListPlayers_StoreErrors(t *testing.T) {
	boom := errors.New("db down")

	tests := []struct {
		name  string
		setup func(d *testDeps)
	}{
		{
			name: "page query fails",
			setup: func(d *testDeps) {
				d.players.FindPageFunc = func(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]playerdb.Player, error) {
					return nil, boom
				}
			},
		},
		{
			name: "count fails",
			setup: func(d *testDeps) {
				d.players.CountFunc = func(ctx context.Context, db bun.IDB) (int, error) { return 0, boom }
			},
		},
		{
			name: "score lookup fails",
			setup: func(d *testDeps) {
				d.players.FindPageFunc = func(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]playerdb.Player, error) {
					return []playerdb.Player{player("Anna", "Schmidt")}, nil
				}
				d.scores.FindLatestSnapshotsForPlayersFunc = func(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]scoredb.ScoreSnapshot, error) {
					return nil, boom
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			tt.setup(deps)

			page, err := deps.service().ListPlayers(context.Background(), 0, 10, playertypes.SortByName)

			assert.Nil(t, page)
			require.ErrorIs(t, err, boom)
			assert.NotErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSortPlayerViews_ByteWiseNames(t *testing.T) {
	views := []playertypes.PlayerView{
		{FirstName: "a", LastName: "zeta"},
		{FirstName: "B", LastName: "Zeta"},
		{FirstName: "A", LastName: "Zeta"},
	}

	sortPlayerViews(views, playertypes.SortByName)

	assert.Equal(t, []string{"A Zeta", "B Zeta", "a zeta"}, names(views))
}
