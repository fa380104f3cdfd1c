package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lost-and-found/internal/model"
)

type ClaimStore struct {
	mu     sync.RWMutex
	claims map[string]model.ClaimRequest
}

func NewClaimStore() *ClaimStore {
	return &ClaimStore{claims: make(map[string]model.ClaimRequest)}
}

// Create enforces one pending claim per (item, user) like the Postgres partial index.
func (s *ClaimStore) Create(_ context.Context, c model.ClaimRequest) (model.ClaimRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Status == model.ClaimStatusPending {
		for _, existing := range s.claims {
			if existing.Status == model.ClaimStatusPending && existing.ItemID == c.ItemID && existing.UserID == c.UserID {
				return model.ClaimRequest{}, model.ErrDuplicateClaim
			}
		}
	}
	s.claims[c.ID] = c
	return c, nil
}

func (s *ClaimStore) Get(_ context.Context, id string) (model.ClaimRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.claims[id]
	if !ok {
		return model.ClaimRequest{}, model.ErrClaimNotFound
	}
	return c, nil
}

func (s *ClaimStore) filter(keep func(model.ClaimRequest) bool, newer func(a, b model.ClaimRequest) bool) []model.ClaimRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ClaimRequest, 0)
	for _, c := range s.claims {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return out
}

func byCreated(a, b model.ClaimRequest) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func byUpdated(a, b model.ClaimRequest) bool {
	if a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.ID < b.ID
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

func (s *ClaimStore) ListPending(_ context.Context) ([]model.ClaimRequest, error) {
	return s.filter(func(c model.ClaimRequest) bool { return c.Status == model.ClaimStatusPending }, byCreated), nil
}

func (s *ClaimStore) ListByUser(_ context.Context, userID string) ([]model.ClaimRequest, error) {
	return s.filter(func(c model.ClaimRequest) bool { return c.UserID == userID }, byCreated), nil
}

func (s *ClaimStore) ListApprovedByUser(_ context.Context, userID string) ([]model.ClaimRequest, error) {
	return s.filter(func(c model.ClaimRequest) bool {
		return c.UserID == userID && c.Status == model.ClaimStatusApproved
	}, byUpdated), nil
}

func (s *ClaimStore) ListAll(_ context.Context) ([]model.ClaimRequest, error) {
	return s.filter(func(model.ClaimRequest) bool { return true }, byCreated), nil
}

func (s *ClaimStore) SetStatus(_ context.Context, id string, from model.ClaimStatus, to model.ClaimStatus, notes string, at time.Time) (model.ClaimRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.claims[id]
	if !ok {
		return model.ClaimRequest{}, model.ErrClaimNotFound
	}
	if c.Status.Terminal() || c.Status != from {
		return model.ClaimRequest{}, model.ErrClaimNotPending
	}

	c.Status = to
	c.AdminNotes = notes
	c.UpdatedAt = at
	s.claims[id] = c
	return c, nil
}

func (s *ClaimStore) CountPending(ctx context.Context) (int, error) {
	pending, _ := s.ListPending(ctx)
	return len(pending), nil
}

func (s *ClaimStore) ExistsPendingFor(_ context.Context, itemID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.claims {
		if c.Status == model.ClaimStatusPending && c.ItemID == itemID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ClaimStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[id]; !ok {
		return model.ErrClaimNotFound
	}
	delete(s.claims, id)
	return nil
}
