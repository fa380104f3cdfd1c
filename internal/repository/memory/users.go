package memory

import (
	"context"
	"sync"
	"time"

	"lost-and-found/internal/model"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{byID: make(map[string]model.User), byEmail: make(map[string]string)}
}

func (s *UserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = model.NormalizeEmail(u.Email)
	if _, exists := s.byEmail[u.Email]; exists {
		return model.ErrUserAlreadyExists
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return nil
}

type refreshToken struct {
	userID    string
	expiresAt time.Time
}

type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]refreshToken
	now    func() time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]refreshToken), now: time.Now}
}

func (s *TokenStore) Store(_ context.Context, tokenHash string, userID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[tokenHash] = refreshToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *TokenStore) Validate(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[tokenHash]
	if !ok || !tok.expiresAt.After(s.now()) {
		return "", model.ErrTokenNotFound
	}
	return tok.userID, nil
}

func (s *TokenStore) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenHash)
	return nil
}

func (s *TokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, tok := range s.tokens {
		if tok.userID == userID {
			delete(s.tokens, hash)
		}
	}
	return nil
}

func (s *TokenStore) CleanExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	now := s.now()
	for hash, tok := range s.tokens {
		if !tok.expiresAt.After(now) {
			delete(s.tokens, hash)
			removed++
		}
	}
	return removed, nil
}
