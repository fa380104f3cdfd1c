package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lost-and-found/internal/model"
	"lost-and-found/internal/repository/memory"
	"lost-and-found/internal/service"
)

var (
	_ service.ItemStore         = (*memory.ItemStore)(nil)
	_ service.ClaimStore        = (*memory.ClaimStore)(nil)
	_ service.ActivityStore     = (*memory.ActivityStore)(nil)
	_ service.LoginAttemptStore = (*memory.LoginAttemptStore)(nil)
	_ service.UserStore         = (*memory.UserStore)(nil)
	_ service.TokenStore        = (*memory.TokenStore)(nil)
)

func TestItemStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := memory.NewItemStore(
		model.Item{ID: "a", Name: "Old", CreatedAt: now.Add(-time.Hour)},
		model.Item{ID: "b", Name: "New", CreatedAt: now},
	)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", items[0].ID)

	status := model.ItemStatusClaimed
	updated, err := s.Update(ctx, "a", model.ItemPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Old", updated.Name)
	assert.Equal(t, model.ItemStatusClaimed, updated.Status)

	_, err = s.Update(ctx, "missing", model.ItemPatch{})
	assert.ErrorIs(t, err, model.ErrItemNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), model.ErrItemNotFound)
}

func TestClaimStore_SetStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	s := memory.NewClaimStore()
	_, err := s.Create(ctx, model.ClaimRequest{ID: "c1", ItemID: "i1", UserID: "u1", Status: model.ClaimStatusPending})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, to := range []model.ClaimStatus{model.ClaimStatusApproved, model.ClaimStatusRejected} {
		wg.Add(1)
		go func(to model.ClaimStatus) {
			defer wg.Done()
			_, err := s.SetStatus(ctx, "c1", model.ClaimStatusPending, to, "", time.Now())
			results <- err
		}(to)
	}
	wg.Wait()
	close(results)

	var okCount, notPending int
	for err := range results {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, model.ErrClaimNotPending):
			notPending++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, notPending)

	_, err = s.SetStatus(ctx, "c1", model.ClaimStatusApproved, model.ClaimStatusRejected, "", time.Now())
	assert.ErrorIs(t, err, model.ErrClaimNotPending)

	_, err = s.SetStatus(ctx, "nope", model.ClaimStatusPending, model.ClaimStatusApproved, "", time.Now())
	assert.ErrorIs(t, err, model.ErrClaimNotFound)
}

func TestClaimStore_DuplicatePending(t *testing.T) {
	ctx := context.Background()
	s := memory.NewClaimStore()

	_, err := s.Create(ctx, model.ClaimRequest{ID: "c1", ItemID: "i1", UserID: "u1", Status: model.ClaimStatusPending})
	require.NoError(t, err)
	_, err = s.Create(ctx, model.ClaimRequest{ID: "c2", ItemID: "i1", UserID: "u1", Status: model.ClaimStatusPending})
	assert.ErrorIs(t, err, model.ErrDuplicateClaim)

	_, err = s.Create(ctx, model.ClaimRequest{ID: "c3", ItemID: "i1", UserID: "u2", Status: model.ClaimStatusPending})
	assert.NoError(t, err)
}

func TestLoginAttemptStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewLoginAttemptStore()
	now := time.Now()

	for i := 1; i <= 4; i++ {
		rec, err := s.Increment(ctx, "A@School.edu", model.MaxLoginAttempts, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		assert.Equal(t, i, rec.Attempts)
	}

	rec, err := s.Get(ctx, "a@school.edu")
	require.NoError(t, err)
	assert.True(t, rec.IsDeactivated)
	require.NotNil(t, rec.DeactivatedAt)
	assert.Equal(t, now.Add(3*time.Second), *rec.DeactivatedAt)

	count, _ := s.CountDeactivated(ctx)
	assert.Equal(t, 1, count)

	require.NoError(t, s.Reactivate(ctx, "a@school.edu", now))
	require.NoError(t, s.Reactivate(ctx, "a@school.edu", now))
	rec, _ = s.Get(ctx, "a@school.edu")
	assert.Zero(t, rec.Attempts)
	assert.False(t, rec.IsDeactivated)
	assert.Nil(t, rec.DeactivatedAt)
	assert.NotNil(t, rec.ReactivatedAt)
}

func TestActivityStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewActivityStore()
	now := time.Now()

	require.NoError(t, s.Append(ctx, model.ActivityLogEntry{ID: "old", Timestamp: now.AddDate(0, 0, -61)}))
	require.NoError(t, s.Append(ctx, model.ActivityLogEntry{ID: "new", Timestamp: now}))
	require.NoError(t, s.Append(ctx, model.ActivityLogEntry{ID: "mid", Timestamp: now.Add(-time.Hour)}))

	entries, _ := s.ListRecent(ctx, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)

	purged, _ := s.PurgeOlderThan(ctx, now.AddDate(0, 0, -60))
	assert.Equal(t, 1, purged)
	entries, _ = s.ListRecent(ctx, 50)
	assert.Len(t, entries, 2)
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTokenStore()

	require.NoError(t, s.Store(ctx, "live", "u1", time.Now().Add(time.Hour)))
	require.NoError(t, s.Store(ctx, "dead", "u1", time.Now().Add(-time.Hour)))

	owner, err := s.Validate(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	_, err = s.Validate(ctx, "dead")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)

	removed, _ := s.CleanExpired(ctx)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, s.RevokeAllForUser(ctx, "u1"))
	_, err = s.Validate(ctx, "live")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}
