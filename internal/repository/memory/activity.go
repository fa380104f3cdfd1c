package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lost-and-found/internal/model"
)

type ActivityStore struct {
	mu      sync.RWMutex
	entries []model.ActivityLogEntry
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (s *ActivityStore) Append(_ context.Context, e model.ActivityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	return nil
}

func (s *ActivityStore) ListRecent(_ context.Context, max int) ([]model.ActivityLogEntry, error) {
	s.mu.RLock()
	out := make([]model.ActivityLogEntry, len(s.entries))
	copy(out, s.entries)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func (s *ActivityStore) PurgeOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	purged := 0
	for _, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return purged, nil
}
