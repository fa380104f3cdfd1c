//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"lost-and-found/internal/database"
	"lost-and-found/internal/model"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("lostfound_test"),
		postgres.WithUsername("lostfound"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, dsn, 5, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	items := NewItemRepository(db.Pool)
	claims := NewClaimRepository(db.Pool)
	activity := NewActivityRepository(db.Pool)
	attempts := NewLoginAttemptRepository(db.Pool)
	users := NewUserRepository(db.Pool)
	tokens := NewTokenRepository(db.Pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("items", func(t *testing.T) {
		created, err := items.Create(ctx, model.Item{
			ID: uuid.NewString(), Name: "Black Backpack", Category: "Bags",
			Status: model.ItemStatusUnclaimed, DateFound: "2024-11-30", LocationFound: "Ozanam Building", CreatedAt: now,
		})
		require.NoError(t, err)

		desc := "Nike backpack"
		updated, err := items.Update(ctx, created.ID, model.ItemPatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Black Backpack", updated.Name)
		assert.Equal(t, desc, updated.Description)

		_, err = items.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrItemNotFound)

		require.NoError(t, items.Delete(ctx, created.ID))
		assert.ErrorIs(t, items.Delete(ctx, created.ID), model.ErrItemNotFound)
	})

	t.Run("claims", func(t *testing.T) {
		itemID := uuid.NewString()
		claim := model.ClaimRequest{
			ID: uuid.NewString(), ItemID: itemID, ItemName: "Wallet", UserID: "u1", UserName: "Ana",
			ProofDescription: "brown, initials AB", Status: model.ClaimStatusPending, CreatedAt: now, UpdatedAt: now,
		}
		_, err := claims.Create(ctx, claim)
		require.NoError(t, err)

		dup := claim
		dup.ID = uuid.NewString()
		_, err = claims.Create(ctx, dup)
		assert.ErrorIs(t, err, model.ErrDuplicateClaim)

		exists, err := claims.ExistsPendingFor(ctx, itemID, "u1")
		require.NoError(t, err)
		assert.True(t, exists)

		approved, err := claims.SetStatus(ctx, claim.ID, model.ClaimStatusPending, model.ClaimStatusApproved, "ok", now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, model.ClaimStatusApproved, approved.Status)

		_, err = claims.SetStatus(ctx, claim.ID, model.ClaimStatusPending, model.ClaimStatusRejected, "", now)
		assert.ErrorIs(t, err, model.ErrClaimNotPending)

		_, err = claims.SetStatus(ctx, uuid.NewString(), model.ClaimStatusPending, model.ClaimStatusRejected, "", now)
		assert.ErrorIs(t, err, model.ErrClaimNotFound)

		list, err := claims.ListApprovedByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("activity", func(t *testing.T) {
		require.NoError(t, activity.Append(ctx, model.ActivityLogEntry{
			ID: uuid.NewString(), Action: model.ActionSeedData, UserName: "Admin", Timestamp: now.AddDate(0, 0, -90),
		}))
		require.NoError(t, activity.Append(ctx, model.ActivityLogEntry{
			ID: uuid.NewString(), Action: model.ActionAdd, UserName: "Admin", ItemID: uuid.NewString(), ItemName: "Keys", Timestamp: now,
		}))

		purged, err := activity.PurgeOlderThan(ctx, now.AddDate(0, 0, -60))
		require.NoError(t, err)
		assert.Equal(t, 1, purged)

		entries, err := activity.ListRecent(ctx, 50)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, model.ActionAdd, entries[0].Action)
	})

	t.Run("login attempts", func(t *testing.T) {
		email := "Student@School.edu"
		for i := 1; i <= 4; i++ {
			rec, err := attempts.Increment(ctx, email, model.MaxLoginAttempts, now)
			require.NoError(t, err)
			assert.Equal(t, i, rec.Attempts)
			assert.Equal(t, i >= model.MaxLoginAttempts, rec.IsDeactivated)
		}

		count, err := attempts.CountDeactivated(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, attempts.Reactivate(ctx, email, now))
		rec, err := attempts.Get(ctx, "student@school.edu")
		require.NoError(t, err)
		assert.Zero(t, rec.Attempts)
		assert.False(t, rec.IsDeactivated)
		assert.NotNil(t, rec.ReactivatedAt)
	})

	t.Run("users and tokens", func(t *testing.T) {
		u := model.User{ID: uuid.NewString(), Email: "Admin@School.edu", PasswordHash: "x", Role: model.RoleAdmin, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, users.Create(ctx, u))
		assert.ErrorIs(t, users.Create(ctx, model.User{ID: uuid.NewString(), Email: "admin@school.edu", PasswordHash: "x", Role: model.RoleUser}), model.ErrUserAlreadyExists)

		found, err := users.FindByEmail(ctx, "ADMIN@school.edu")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)

		require.NoError(t, tokens.Store(ctx, "hash-1", u.ID, now.Add(time.Hour)))
		owner, err := tokens.Validate(ctx, "hash-1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, owner)

		require.NoError(t, tokens.Revoke(ctx, "hash-1"))
		_, err = tokens.Validate(ctx, "hash-1")
		assert.ErrorIs(t, err, model.ErrTokenNotFound)
	})
}
