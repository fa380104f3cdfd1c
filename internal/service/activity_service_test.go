package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lost-and-found/internal/model"
)

func TestActivityService_RecordFallbacks(t *testing.T) {
	f := newFixture()

	f.activity.Record(context.Background(), model.Actor{}, model.ActionClaim, nil, "")

	entries := f.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown", entries[0].UserID)
	assert.Equal(t, "Unknown User", entries[0].UserName)
	assert.Equal(t, "Unknown Item", entries[0].ItemName)
	assert.Equal(t, fixedNow, entries[0].Timestamp)
}

func TestActivityService_RecordDropsUnknownAction(t *testing.T) {
	f := newFixture()

	f.activity.Record(context.Background(), adminActor, model.ActivityAction("rename"), nil, "")
	assert.Empty(t, f.entries())
}

func TestActivityService_RecordSurvivesCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.activity.Record(ctx, adminActor, model.ActionAdd, &model.ItemRef{ID: "i1", Name: "Wallet"}, "")
	assert.Len(t, f.entries(), 1)
}

func TestActivityService_RecordSwallowsStoreErrors(t *testing.T) {
	svc := NewActivityService(brokenActivityStore{}, time.Hour)
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), adminActor, model.ActionAdd, nil, "")
	})

	var nilSvc *ActivityService
	assert.NotPanics(t, func() {
		nilSvc.Record(context.Background(), adminActor, model.ActionAdd, nil, "")
	})
}

func TestActivityService_Recent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for i := range 60 {
		f.activity.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }
		f.activity.Record(ctx, adminActor, model.ActionEdit, nil, "")
	}
	f.activity.now = func() time.Time { return fixedNow.Add(-time.Hour) }
	f.activity.Record(ctx, adminActor, "archived", nil, "")

	views, err := f.activity.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, views, DefaultActivityLimit)
	assert.Equal(t, "Edited item", views[1].ActionInfo.Label)

	all, err := f.activity.Recent(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, all, 61)

	var unknown model.ActivityLogView
	for _, v := range all {
		if v.Action == "archived" {
			unknown = v
		}
	}
	assert.Equal(t, "archived", unknown.ActionInfo.Label)
}

func TestActivityService_Purge(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.activity.now = func() time.Time { return fixedNow.Add(-90 * 24 * time.Hour) }
	f.activity.Record(ctx, adminActor, model.ActionAdd, nil, "")
	f.activity.now = func() time.Time { return fixedNow.Add(-time.Hour) }
	f.activity.Record(ctx, adminActor, model.ActionEdit, nil, "")
	f.activity.now = func() time.Time { return fixedNow }

	deleted, err := f.activity.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 60, f.activity.RetentionDays())

	entries := f.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionEdit, entries[0].Action)
}
