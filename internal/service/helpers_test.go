package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"lost-and-found/internal/event"
	"lost-and-found/internal/model"
	"lost-and-found/internal/repository/memory"
)

var (
	errStoreDown = errors.New("store unavailable")
	fixedNow     = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	adminActor   = model.Actor{UserID: "admin-1", UserName: "Admin", Role: model.RoleAdmin}
	userActor    = model.Actor{UserID: "user-1", UserName: "Maria", Role: model.RoleUser}
)

type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(e event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe() (<-chan event.Event, func()) {
	ch := make(chan event.Event)
	return ch, func() {}
}

func (b *recordingBus) types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	items    *memory.ItemStore
	claims   *memory.ClaimStore
	log      *memory.ActivityStore
	attempts *memory.LoginAttemptStore
	bus      *recordingBus
	activity *ActivityService
}

func newFixture(seed ...model.Item) *fixture {
	f := &fixture{
		items:    memory.NewItemStore(seed...),
		claims:   memory.NewClaimStore(),
		log:      memory.NewActivityStore(),
		attempts: memory.NewLoginAttemptStore(),
		bus:      &recordingBus{},
	}
	f.activity = NewActivityService(f.log, 60*24*time.Hour)
	f.activity.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) itemService() *ItemService {
	svc := NewItemService(f.items, f.activity, f.bus, "en", 4)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (f *fixture) claimService() *ClaimService {
	svc := NewClaimService(f.claims, f.items, f.activity, f.bus)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (f *fixture) entries() []model.ActivityLogEntry {
	entries, _ := f.log.ListRecent(context.Background(), 100)
	return entries
}

func unclaimed(id, name string) model.Item {
	return model.Item{ID: id, Name: name, Status: model.ItemStatusUnclaimed, DateFound: "2026-03-01", CreatedAt: fixedNow.Add(-time.Hour)}
}

// mockItemStore lets tests fail individual item writes.
type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) List(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *mockItemStore) Get(ctx context.Context, id string) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *mockItemStore) Create(ctx context.Context, it model.Item) (model.Item, error) {
	args := m.Called(ctx, it)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *mockItemStore) Update(ctx context.Context, id string, patch model.ItemPatch) (model.Item, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *mockItemStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// brokenAttemptStore fails every call.
type brokenAttemptStore struct{}

func (brokenAttemptStore) Get(context.Context, string) (model.LoginAttemptRecord, error) {
	return model.LoginAttemptRecord{}, errStoreDown
}

func (brokenAttemptStore) Increment(context.Context, string, int, time.Time) (model.LoginAttemptRecord, error) {
	return model.LoginAttemptRecord{}, errStoreDown
}

func (brokenAttemptStore) Reset(context.Context, string, time.Time) error { return errStoreDown }

func (brokenAttemptStore) Reactivate(context.Context, string, time.Time) error { return errStoreDown }

func (brokenAttemptStore) ListDeactivated(context.Context) ([]model.LoginAttemptRecord, error) {
	return nil, errStoreDown
}

func (brokenAttemptStore) CountDeactivated(context.Context) (int, error) { return 0, errStoreDown }

// brokenActivityStore fails every write.
type brokenActivityStore struct{}

func (brokenActivityStore) Append(context.Context, model.ActivityLogEntry) error { return errStoreDown }

func (brokenActivityStore) ListRecent(context.Context, int) ([]model.ActivityLogEntry, error) {
	return nil, errStoreDown
}

func (brokenActivityStore) PurgeOlderThan(context.Context, time.Time) (int, error) {
	return 0, errStoreDown
}
