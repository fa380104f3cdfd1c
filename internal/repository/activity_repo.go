package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lost-and-found/internal/model"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Append(ctx context.Context, e model.ActivityLogEntry) error {
	var itemID *string
	if e.ItemID != "" {
		itemID = &e.ItemID
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_logs (id, action, user_id, user_name, item_id, item_name, details, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Action, e.UserID, e.UserName, itemID, e.ItemName, e.Details, e.Timestamp)
	if err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, max int) ([]model.ActivityLogEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, action, user_id, user_name, COALESCE(item_id, ''), item_name, details, timestamp
		 FROM activity_logs
		 ORDER BY timestamp DESC
		 LIMIT $1`, max)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	entries := make([]model.ActivityLogEntry, 0)
	for rows.Next() {
		var e model.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.UserID, &e.UserName, &e.ItemID, &e.ItemName, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ActivityRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_logs WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge activity logs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
