package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lost-and-found/internal/model"
)

type LoginAttemptStore struct {
	mu      sync.Mutex
	records map[string]model.LoginAttemptRecord
}

func NewLoginAttemptStore() *LoginAttemptStore {
	return &LoginAttemptStore{records: make(map[string]model.LoginAttemptRecord)}
}

func (s *LoginAttemptStore) Get(_ context.Context, email string) (model.LoginAttemptRecord, error) {
	email = model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[email]; ok {
		return rec, nil
	}
	return model.LoginAttemptRecord{Email: email}, nil
}

func (s *LoginAttemptStore) Increment(_ context.Context, email string, threshold int, now time.Time) (model.LoginAttemptRecord, error) {
	email = model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[email]
	rec.Email = email
	rec.Attempts++
	rec.LastAttempt = &now
	if !rec.IsDeactivated && rec.Attempts >= threshold {
		rec.IsDeactivated = true
		rec.DeactivatedAt = &now
	}
	s.records[email] = rec
	return rec, nil
}

func (s *LoginAttemptStore) Reset(_ context.Context, email string, now time.Time) error {
	email = model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[email]
	rec.Email = email
	rec.Attempts = 0
	rec.IsDeactivated = false
	rec.DeactivatedAt = nil
	rec.LastAttempt = &now
	s.records[email] = rec
	return nil
}

func (s *LoginAttemptStore) Reactivate(_ context.Context, email string, now time.Time) error {
	email = model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[email]
	rec.Email = email
	rec.Attempts = 0
	rec.IsDeactivated = false
	rec.DeactivatedAt = nil
	rec.ReactivatedAt = &now
	if rec.LastAttempt == nil {
		rec.LastAttempt = &now
	}
	s.records[email] = rec
	return nil
}

func (s *LoginAttemptStore) ListDeactivated(_ context.Context) ([]model.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LoginAttemptRecord, 0)
	for _, rec := range s.records {
		if rec.IsDeactivated {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DeactivatedAt, out[j].DeactivatedAt
		if a == nil || b == nil || a.Equal(*b) {
			return out[i].Email < out[j].Email
		}
		return a.After(*b)
	})
	return out, nil
}

func (s *LoginAttemptStore) CountDeactivated(ctx context.Context) (int, error) {
	list, _ := s.ListDeactivated(ctx)
	return len(list), nil
}
