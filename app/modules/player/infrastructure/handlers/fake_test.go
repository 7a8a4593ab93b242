package playerhandlers

import (
	"context"

	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	"github.com/google/uuid"
)

// FakeService is a programmable playerservice.Service.
type FakeService struct {
	trace []string

	ListPlayersFunc  func(ctx context.Context, offset, pageSize int, sort playertypes.SortMode) (*playertypes.PlayerPage, error)
	CreatePlayerFunc func(ctx context.Context, firstName, lastName string) (*playertypes.PlayerInfo, error)
	UpdatePlayerFunc func(ctx context.Context, id uuid.UUID, firstName, lastName string) (*playertypes.PlayerInfo, error)
	DeletePlayerFunc func(ctx context.Context, id uuid.UUID, force bool) error
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) ListPlayers(ctx context.Context, offset, pageSize int, sort playertypes.SortMode) (*playertypes.PlayerPage, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, offset, pageSize, sort)
	}
	return &playertypes.PlayerPage{Offset: offset, PageSize: pageSize, Sort: sort}, nil
}

func (f *FakeService) CreatePlayer(ctx context.Context, firstName, lastName string) (*playertypes.PlayerInfo, error) {
	f.record("CreatePlayer")
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, firstName, lastName)
	}
	return &playertypes.PlayerInfo{ID: uuid.New(), FirstName: firstName, LastName: lastName}, nil
}

func (f *FakeService) UpdatePlayer(ctx context.Context, id uuid.UUID, firstName, lastName string) (*playertypes.PlayerInfo, error) {
	f.record("UpdatePlayer")
	if f.UpdatePlayerFunc != nil {
		return f.UpdatePlayerFunc(ctx, id, firstName, lastName)
	}
	return &playertypes.PlayerInfo{ID: id, FirstName: firstName, LastName: lastName}, nil
}

func (f *FakeService) DeletePlayer(ctx context.Context, id uuid.UUID, force bool) error {
	f.record("DeletePlayer")
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, id, force)
	}
	return nil
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ playerservice.Service = (*FakeService)(nil)
