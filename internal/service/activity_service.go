package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lost-and-found/internal/model"
)

const (
	DefaultActivityLimit = 50
	maxActivityLimit     = 500
)

// ActivityService appends to and reads the admin activity log. Writes never fail
// the caller: errors are logged and counted.
type ActivityService struct {
	store     ActivityStore
	retention time.Duration
	now       func() time.Time
}

func NewActivityService(store ActivityStore, retention time.Duration) *ActivityService {
	return &ActivityService{store: store, retention: retention, now: time.Now}
}

// Record writes one entry. A nil item is logged as "Unknown Item"; unknown actions are dropped.
func (s *ActivityService) Record(ctx context.Context, actor model.Actor, action model.ActivityAction, item *model.ItemRef, details string) {
	if s == nil {
		return
	}
	if !action.Valid() {
		slog.Warn("activity log skipped unknown action", "action", action)
		return
	}

	entry := model.ActivityLogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		UserID:    actor.UserID,
		UserName:  actor.UserName,
		ItemName:  "Unknown Item",
		Details:   details,
		Timestamp: s.now().UTC(),
	}
	if entry.UserID == "" {
		entry.UserID = "unknown"
	}
	if entry.UserName == "" {
		entry.UserName = "Unknown User"
	}
	if item != nil {
		entry.ItemID = item.ID
		if item.Name != "" {
			entry.ItemName = item.Name
		}
	}

	// detach from request cancellation: the mutation already happened
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.store.Append(ctx, entry); err != nil {
		activityWriteFailures.Inc()
		slog.Warn("activity log write failed", "action", action, "item_id", entry.ItemID, "error", err)
	}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityLogView, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	views := make([]model.ActivityLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, model.ActivityLogView{ActivityLogEntry: e, ActionInfo: e.Action.Info()})
	}
	return views, nil
}

// Purge deletes entries older than the retention window.
func (s *ActivityService) Purge(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.retention)
	deleted, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge activity: %w", err)
	}

	slog.Info("activity log purged", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

func (s *ActivityService) RetentionDays() int {
	return int(s.retention / (24 * time.Hour))
}
