package service

import (
	"context"
	"time"

	"lost-and-found/internal/model"
)

// Store contracts. internal/repository implements them on Postgres and
// internal/repository/memory in process.

type ItemStore interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id string) (model.Item, error)
	Create(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, id string, patch model.ItemPatch) (model.Item, error)
	Delete(ctx context.Context, id string) error
}

type ClaimStore interface {
	Create(ctx context.Context, claim model.ClaimRequest) (model.ClaimRequest, error)
	Get(ctx context.Context, id string) (model.ClaimRequest, error)
	ListPending(ctx context.Context) ([]model.ClaimRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error)
	ListApprovedByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error)
	ListAll(ctx context.Context) ([]model.ClaimRequest, error)
	// SetStatus moves a claim from one status to another. It fails with
	// model.ErrClaimNotPending when the stored status is no longer from.
	SetStatus(ctx context.Context, id string, from model.ClaimStatus, to model.ClaimStatus, notes string, at time.Time) (model.ClaimRequest, error)
	CountPending(ctx context.Context) (int, error)
	ExistsPendingFor(ctx context.Context, itemID string, userID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type ActivityStore interface {
	Append(ctx context.Context, entry model.ActivityLogEntry) error
	ListRecent(ctx context.Context, max int) ([]model.ActivityLogEntry, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type LoginAttemptStore interface {
	// Get returns a zero record (Attempts 0, not deactivated) for unknown emails.
	Get(ctx context.Context, email string) (model.LoginAttemptRecord, error)
	// Increment adds one failure and deactivates once attempts reach threshold.
	Increment(ctx context.Context, email string, threshold int, now time.Time) (model.LoginAttemptRecord, error)
	Reset(ctx context.Context, email string, now time.Time) error
	Reactivate(ctx context.Context, email string, now time.Time) error
	ListDeactivated(ctx context.Context) ([]model.LoginAttemptRecord, error)
	CountDeactivated(ctx context.Context) (int, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, user model.User) error
}

type TokenStore interface {
	Store(ctx context.Context, tokenHash string, userID string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	CleanExpired(ctx context.Context) (int64, error)
}
