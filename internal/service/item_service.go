package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lost-and-found/internal/event"
	"lost-and-found/internal/model"
	"lost-and-found/internal/query"
	"lost-and-found/internal/storage"
)

const defaultBulkConcurrency = 8

type ItemService struct {
	store       ItemStore
	activity    *ActivityService
	bus         event.Bus
	locale      string
	concurrency int
	images      storage.ImageStore
	now         func() time.Time
	randN       func(int64) int64
}

func NewItemService(store ItemStore, activity *ActivityService, bus event.Bus, locale string, concurrency int) *ItemService {
	if bus == nil {
		bus = event.Nop{}
	}
	if concurrency <= 0 {
		concurrency = defaultBulkConcurrency
	}
	return &ItemService{
		store:       store,
		activity:    activity,
		bus:         bus,
		locale:      locale,
		concurrency: concurrency,
		now:         time.Now,
		randN:       rand.Int64N,
	}
}

// SetImageStore lets deletes and image replacements remove the uploaded file.
// Without one, stored images are left in place.
func (s *ItemService) SetImageStore(images storage.ImageStore) {
	s.images = images
}

// List fetches every item and applies the filters and sort order in memory.
func (s *ItemService) List(ctx context.Context, opts query.Options) ([]model.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if opts.Locale == "" {
		opts.Locale = s.locale
	}
	return query.Apply(items, opts), nil
}

func (s *ItemService) Get(ctx context.Context, id string) (model.Item, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

func (s *ItemService) Recent(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return query.Recent(items, s.now()), nil
}

func (s *ItemService) Stats(ctx context.Context) (model.ItemStats, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return model.ItemStats{}, fmt.Errorf("list items: %w", err)
	}
	return model.CountItems(items), nil
}

func validateItem(it model.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	if !it.Status.Valid() {
		return fmt.Errorf("%w: status must be Unclaimed or Claimed", model.ErrInvalidInput)
	}
	if strings.TrimSpace(it.DateFound) != "" {
		if _, ok := query.ParseDate(it.DateFound); !ok {
			return fmt.Errorf("%w: date_found must be YYYY-MM-DD", model.ErrInvalidInput)
		}
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, actor model.Actor, req model.ItemRequest) (model.Item, error) {
	it := req.Item()
	it.Name = strings.TrimSpace(it.Name)
	if it.Status == "" {
		it.Status = model.ItemStatusUnclaimed
	}
	if err := validateItem(it); err != nil {
		return model.Item{}, err
	}

	it.ID = uuid.NewString()
	it.CreatedAt = s.now().UTC()

	created, err := s.store.Create(ctx, it)
	if err != nil {
		return model.Item{}, fmt.Errorf("create item: %w", err)
	}

	s.activity.Record(ctx, actor, model.ActionAdd, &model.ItemRef{ID: created.ID, Name: created.Name}, "")
	s.bus.Publish(event.New(event.TypeItemCreated, actor.UserID, created))
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, actor model.Actor, id string, patch model.ItemPatch) (model.Item, error) {
	if patch.Empty() {
		return model.Item{}, fmt.Errorf("%w: nothing to update", model.ErrInvalidInput)
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	// validate the patch against a placeholder so unset fields pass
	candidate := patch.Apply(model.Item{Name: "-", Status: model.ItemStatusUnclaimed})
	if err := validateItem(candidate); err != nil {
		return model.Item{}, err
	}

	var previousImage string
	if patch.Image != nil && s.images != nil {
		current, err := s.store.Get(ctx, id)
		if err != nil {
			return model.Item{}, fmt.Errorf("update item %s: %w", id, err)
		}
		previousImage = current.Image
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return model.Item{}, fmt.Errorf("update item %s: %w", id, err)
	}
	if previousImage != updated.Image {
		s.releaseImage(ctx, previousImage)
	}

	s.activity.Record(ctx, actor, model.ActionEdit, &model.ItemRef{ID: updated.ID, Name: updated.Name}, "")
	s.bus.Publish(event.New(event.TypeItemUpdated, actor.UserID, updated))
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, actor model.Actor, id string) error {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	s.releaseImage(ctx, it.Image)

	s.activity.Record(ctx, actor, model.ActionDelete, &model.ItemRef{ID: it.ID, Name: it.Name}, "")
	s.bus.Publish(event.New(event.TypeItemDeleted, actor.UserID, map[string]string{"id": it.ID}))
	return nil
}

// BulkClaim marks every id as Claimed. Writes are independent: a failure leaves the
// successful ones in place and yields model.ErrBulkFailed.
func (s *ItemService) BulkClaim(ctx context.Context, actor model.Actor, ids []string) (int, error) {
	ids, err := uniqueIDs(ids)
	if err != nil {
		return 0, err
	}

	done, err := s.fanOut(ctx, "bulk_claim", ids, func(ctx context.Context, id string) error {
		_, err := s.store.Update(ctx, id, model.StatusPatch(model.ItemStatusClaimed))
		return err
	})
	if err != nil {
		return done, err
	}

	s.activity.Record(ctx, actor, model.ActionBulkClaim, &model.ItemRef{Name: fmt.Sprintf("%d items", len(ids))}, "")
	s.bus.Publish(event.New(event.TypeItemsClaimed, actor.UserID, map[string]any{"ids": ids}))
	return done, nil
}

func (s *ItemService) BulkDelete(ctx context.Context, actor model.Actor, ids []string) (int, error) {
	ids, err := uniqueIDs(ids)
	if err != nil {
		return 0, err
	}

	done, err := s.fanOut(ctx, "bulk_delete", ids, func(ctx context.Context, id string) error {
		it, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return err
		}
		s.releaseImage(ctx, it.Image)
		return nil
	})
	if err != nil {
		return done, err
	}

	s.activity.Record(ctx, actor, model.ActionBulkDelete, &model.ItemRef{Name: fmt.Sprintf("%d items", len(ids))}, "")
	s.bus.Publish(event.New(event.TypeItemsDeleted, actor.UserID, map[string]any{"ids": ids}))
	return done, nil
}

// Seed inserts one batch of sample items.
func (s *ItemService) Seed(ctx context.Context, actor model.Actor) ([]model.Item, error) {
	batch := sampleBatch(s.now(), s.randN)
	byID := make(map[string]model.Item, len(batch))
	ids := make([]string, 0, len(batch))
	for _, it := range batch {
		byID[it.ID] = it
		ids = append(ids, it.ID)
	}

	if _, err := s.fanOut(ctx, "seed", ids, func(ctx context.Context, id string) error {
		_, err := s.store.Create(ctx, byID[id])
		return err
	}); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, model.ActionSeedData, &model.ItemRef{Name: fmt.Sprintf("%d mock items", len(batch))}, "")
	s.bus.Publish(event.New(event.TypeItemsSeeded, actor.UserID, map[string]int{"count": len(batch)}))
	return batch, nil
}

// releaseImage removes an uploaded image once no item points at it. Failures are
// logged and never undo the item write.
func (s *ItemService) releaseImage(ctx context.Context, imageURL string) {
	if s.images == nil || imageURL == "" {
		return
	}
	key, ok := s.images.KeyFor(imageURL)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.images.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		slog.Warn("image cleanup failed", "key", key, "error", err)
	}
}

// fanOut runs write once per id with bounded concurrency and waits for all of them.
// Siblings are not cancelled when one fails.
func (s *ItemService) fanOut(ctx context.Context, op string, ids []string, write func(context.Context, string) error) (int, error) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	var ok, failed atomic.Int64
	for _, id := range ids {
		g.Go(func() error {
			if err := write(ctx, id); err != nil {
				failed.Add(1)
				bulkWrites.WithLabelValues(op, "error").Inc()
				slog.Warn("bulk write failed", "op", op, "id", id, "error", err)
				return err
			}
			ok.Add(1)
			bulkWrites.WithLabelValues(op, "ok").Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(ok.Load()), fmt.Errorf("%w: %s: %d of %d writes failed: %w",
			model.ErrBulkFailed, op, failed.Load(), len(ids), err)
	}
	return int(ok.Load()), nil
}

func uniqueIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no item ids selected", model.ErrInvalidInput)
	}
	return out, nil
}
