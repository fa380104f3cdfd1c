// Package memory holds process-local stores used for STORE_BACKEND=memory and tests.
// They satisfy the same contracts as the Postgres repositories.
package memory

import (
	"context"
	"sort"
	"sync"

	"lost-and-found/internal/model"
)

type ItemStore struct {
	mu    sync.RWMutex
	items map[string]model.Item
}

func NewItemStore(seed ...model.Item) *ItemStore {
	s := &ItemStore{items: make(map[string]model.Item, len(seed))}
	for _, it := range seed {
		s.items[it.ID] = it
	}
	return s
}

func (s *ItemStore) List(_ context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *ItemStore) Get(_ context.Context, id string) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return model.Item{}, model.ErrItemNotFound
	}
	return it, nil
}

func (s *ItemStore) Create(_ context.Context, it model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[it.ID] = it
	return it, nil
}

func (s *ItemStore) Update(_ context.Context, id string, patch model.ItemPatch) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return model.Item{}, model.ErrItemNotFound
	}
	it = patch.Apply(it)
	s.items[id] = it
	return it, nil
}

func (s *ItemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return model.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}
