package playerservice

import (
	"context"
	"errors"
	"testing"

	playerevents "github.com/bettercodepaul/Skat/app/modules/player/domain/events"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestUpdatePlayer(t *testing.T) {
	id := uuid.New()
	existing := func() *playerdb.Player {
		return &playerdb.Player{ID: id, FirstName: "Anna", LastName: "Schmidt"}
	}
	found := func(d *testDeps) {
		d.players.FindByIDFunc = func(ctx context.Context, db bun.IDB, got uuid.UUID) (*playerdb.Player, error) {
			return existing(), nil
		}
	}

	tests := []struct {
		name      string
		firstName string
		lastName  string
		setup     func(d *testDeps)
		wantErr   error
		wantField string
		wantFirst string
		wantLast  string
		wantTrace []string
	}{
		{
			name:      "renames player",
			firstName: "Anna",
			lastName:  "Meier",
			setup:     found,
			wantFirst: "Anna",
			wantLast:  "Meier",
			wantTrace: []string{"FindByID", "ExistsByNameCaseInsensitiveExcludingID", "Save"},
		},
		{
			name:      "keeping own name with different case is allowed",
			firstName: "ANNA",
			lastName:  "schmidt",
			setup:     found,
			wantFirst: "ANNA",
			wantLast:  "schmidt",
			wantTrace: []string{"FindByID", "ExistsByNameCaseInsensitiveExcludingID", "Save"},
		},
		{
			name:      "unknown player",
			firstName: "Anna",
			lastName:  "Meier",
			wantErr:   ErrNotFound,
			wantField: FieldID,
			wantTrace: []string{"FindByID"},
		},
		{
			name:      "name taken by another player",
			firstName: "Bernd",
			lastName:  "Mueller",
			setup: func(d *testDeps) {
				found(d)
				d.players.ExistsByNameCaseInsensitiveExcludingIDFunc = func(ctx context.Context, db bun.IDB, first, last string, excluded uuid.UUID) (bool, error) {
					assert.Equal(t, id, excluded)
					return true, nil
				}
			},
			wantErr:   ErrConflict,
			wantField: FieldNamePair,
			wantTrace: []string{"FindByID", "ExistsByNameCaseInsensitiveExcludingID"},
		},
		{
			name:      "unique index rejects concurrent rename",
			firstName: "Bernd",
			lastName:  "Mueller",
			setup: func(d *testDeps) {
				found(d)
				d.players.SaveFunc = func(ctx context.Context, db bun.IDB, p *playerdb.Player) (*playerdb.Player, error) {
					return nil, playerdb.ErrDuplicateName
				}
			},
			wantErr:   ErrConflict,
			wantField: FieldNamePair,
			wantTrace: []string{"FindByID", "ExistsByNameCaseInsensitiveExcludingID", "Save"},
		},
		{
			name:      "player deleted between read and write",
			firstName: "Anna",
			lastName:  "Meier",
			setup: func(d *testDeps) {
				found(d)
				d.players.SaveFunc = func(ctx context.Context, db bun.IDB, p *playerdb.Player) (*playerdb.Player, error) {
					return nil, playerdb.ErrNoRowsAffected
				}
			},
			wantErr:   ErrNotFound,
			wantField: FieldID,
			wantTrace: []string{"FindByID", "ExistsByNameCaseInsensitiveExcludingID", "Save"},
		},
		{
			name:      "blank last name is rejected before any lookup",
			firstName: "Anna",
			lastName:  "",
			setup:     found,
			wantErr:   ErrInvalidInput,
			wantField: FieldLastName,
			wantTrace: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			if tt.setup != nil {
				tt.setup(deps)
			}

			info, err := deps.service().UpdatePlayer(context.Background(), id, tt.firstName, tt.lastName)

			assert.Equal(t, tt.wantTrace, deps.players.Trace())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.wantField, fe.Field)
				assert.Empty(t, deps.publisher.Messages(playerevents.PlayerUpdatedV1))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, info.ID)
			assert.Equal(t, tt.wantFirst, info.FirstName)
			assert.Equal(t, tt.wantLast, info.LastName)
			assert.Len(t, deps.publisher.Messages(playerevents.PlayerUpdatedV1), 1)
		})
	}
}

func TestUpdatePlayer_InfrastructureError(t *testing.T) {
	deps := newTestDeps()
	boom := errors.New("timeout")
	deps.players.FindByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*playerdb.Player, error) {
		return nil, boom
	}

	_, err := deps.service().UpdatePlayer(context.Background(), uuid.New(), "Anna", "Schmidt")

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
