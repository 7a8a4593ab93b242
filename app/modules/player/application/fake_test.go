package playerservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gamedb "github.com/bettercodepaul/Skat/app/modules/game/infrastructure/repositories"
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	playerdb "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/repositories"
	scoredb "github.com/bettercodepaul/Skat/app/modules/score/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Player Repo
// ------------------------

type FakePlayerRepo struct {
	trace []string

	ExistsByNameCaseInsensitiveFunc            func(ctx context.Context, db bun.IDB, firstName, lastName string) (bool, error)
	ExistsByNameCaseInsensitiveExcludingIDFunc func(ctx context.Context, db bun.IDB, firstName, lastName string, id uuid.UUID) (bool, error)
	FindByIDFunc                               func(ctx context.Context, db bun.IDB, id uuid.UUID) (*playerdb.Player, error)
	LockByIDFunc                               func(ctx context.Context, db bun.IDB, id uuid.UUID) (*playerdb.Player, error)
	SaveFunc                                   func(ctx context.Context, db bun.IDB, player *playerdb.Player) (*playerdb.Player, error)
	DeleteFunc                                 func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	CountFunc                                  func(ctx context.Context, db bun.IDB) (int, error)
	FindPageFunc                               func(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]playerdb.Player, error)
}

func NewFakePlayerRepo() *FakePlayerRepo {
	return &FakePlayerRepo{trace: []string{}}
}

func (f *FakePlayerRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePlayerRepo) ExistsByNameCaseInsensitive(ctx context.Context, db bun.IDB, firstName, lastName string) (bool, error) {
	f.record("ExistsByNameCaseInsensitive")
	if f.ExistsByNameCaseInsensitiveFunc != nil {
		return f.ExistsByNameCaseInsensitiveFunc(ctx, db, firstName, lastName)
	}
	return false, nil
}

func (f *FakePlayerRepo) ExistsByNameCaseInsensitiveExcludingID(ctx context.Context, db bun.IDB, firstName, lastName string, id uuid.UUID) (bool, error) {
	f.record("ExistsByNameCaseInsensitiveExcludingID")
	if f.ExistsByNameCaseInsensitiveExcludingIDFunc != nil {
		return f.ExistsByNameCaseInsensitiveExcludingIDFunc(ctx, db, firstName, lastName, id)
	}
	return false, nil
}

func (f *FakePlayerRepo) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*playerdb.Player, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, db, id)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepo) LockByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*playerdb.Player, error) {
	f.record("LockByID")
	if f.LockByIDFunc != nil {
		return f.LockByIDFunc(ctx, db, id)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepo) Save(ctx context.Context, db bun.IDB, player *playerdb.Player) (*playerdb.Player, error) {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, db, player)
	}
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	return player, nil
}

func (f *FakePlayerRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakePlayerRepo) Count(ctx context.Context, db bun.IDB) (int, error) {
	f.record("Count")
	if f.CountFunc != nil {
		return f.CountFunc(ctx, db)
	}
	return 0, nil
}

func (f *FakePlayerRepo) FindPage(ctx context.Context, db bun.IDB, offset, limit int, sort playertypes.SortMode) ([]playerdb.Player, error) {
	f.record("FindPage")
	if f.FindPageFunc != nil {
		return f.FindPageFunc(ctx, db, offset, limit, sort)
	}
	return []playerdb.Player{}, nil
}

func (f *FakePlayerRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ playerdb.Repository = (*FakePlayerRepo)(nil)

// ------------------------
// Fake Game Repo
// ------------------------

type FakeGameRepo struct {
	trace []string

	ExistsByPlayerIDFunc func(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error)
	NullifySlotFunc      func(ctx context.Context, db bun.IDB, slot gamedb.Slot, playerID uuid.UUID) (int64, error)
	CreateFunc           func(ctx context.Context, db bun.IDB, game *gamedb.Game) error
	FindByIDFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID) (*gamedb.Game, error)
}

func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{trace: []string{}}
}

func (f *FakeGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameRepo) ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error) {
	f.record("ExistsByPlayerID")
	if f.ExistsByPlayerIDFunc != nil {
		return f.ExistsByPlayerIDFunc(ctx, db, playerID)
	}
	return false, nil
}

func (f *FakeGameRepo) NullifySlot(ctx context.Context, db bun.IDB, slot gamedb.Slot, playerID uuid.UUID) (int64, error) {
	f.record("NullifySlot:" + string(slot))
	if f.NullifySlotFunc != nil {
		return f.NullifySlotFunc(ctx, db, slot, playerID)
	}
	return 0, nil
}

func (f *FakeGameRepo) Create(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, game)
	}
	return nil
}

func (f *FakeGameRepo) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*gamedb.Game, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, db, id)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ gamedb.Repository = (*FakeGameRepo)(nil)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace []string

	FindLatestSnapshotsForPlayersFunc func(ctx context.Context, db bun.IDB, playerIDs []uuid.UUID) ([]scoredb.ScoreSnapshot, error)
	ExistsByPlayerIDFunc              func(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error)
	NullifyPlayerReferencesFunc       func(ctx context.Context, db bun.IDB, playerID uuid.UUID) (int64, error)
	CreateFunc                        func(ctx context.Context, db bun.IDB, snapshot *scoredb.ScoreSnapshot) error
	FindByIDFunc                      func(ctx context.Context, db bun.IDB, id uuid.UUID) (*scoredb.ScoreSnapshot, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{trace: []string{}}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) FindLatestSnapshotsForPlayers(ctx context.Context, db bun.IDB, playerIDs []uuid.UUID) ([]scoredb.ScoreSnapshot, error) {
	f.record("FindLatestSnapshotsForPlayers")
	if f.FindLatestSnapshotsForPlayersFunc != nil {
		return f.FindLatestSnapshotsForPlayersFunc(ctx, db, playerIDs)
	}
	return []scoredb.ScoreSnapshot{}, nil
}

func (f *FakeScoreRepo) ExistsByPlayerID(ctx context.Context, db bun.IDB, playerID uuid.UUID) (bool, error) {
	f.record("ExistsByPlayerID")
	if f.ExistsByPlayerIDFunc != nil {
		return f.ExistsByPlayerIDFunc(ctx, db, playerID)
	}
	return false, nil
}

func (f *FakeScoreRepo) NullifyPlayerReferences(ctx context.Context, db bun.IDB, playerID uuid.UUID) (int64, error) {
	f.record("NullifyPlayerReferences")
	if f.NullifyPlayerReferencesFunc != nil {
		return f.NullifyPlayerReferencesFunc(ctx, db, playerID)
	}
	return 0, nil
}

func (f *FakeScoreRepo) Create(ctx context.Context, db bun.IDB, snapshot *scoredb.ScoreSnapshot) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, snapshot)
	}
	return nil
}

func (f *FakeScoreRepo) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*scoredb.ScoreSnapshot, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, db, id)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{messages: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.PublishFunc != nil {
		if err := f.PublishFunc(topic, messages...); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[topic] = append(f.messages[topic], messages...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Messages(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.messages[topic]))
	copy(out, f.messages[topic])
	return out
}
