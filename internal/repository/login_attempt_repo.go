package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lost-and-found/internal/model"
)

const loginAttemptColumns = `email, attempts, is_deactivated, last_attempt, deactivated_at, reactivated_at`

type LoginAttemptRepository struct {
	pool *pgxpool.Pool
}

func NewLoginAttemptRepository(pool *pgxpool.Pool) *LoginAttemptRepository {
	return &LoginAttemptRepository{pool: pool}
}

func scanLoginAttempt(row pgx.Row) (model.LoginAttemptRecord, error) {
	var rec model.LoginAttemptRecord
	var last time.Time
	err := row.Scan(&rec.Email, &rec.Attempts, &rec.IsDeactivated, &last, &rec.DeactivatedAt, &rec.ReactivatedAt)
	if err == nil {
		rec.LastAttempt = &last
	}
	return rec, err
}

func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (model.LoginAttemptRecord, error) {
	email = model.NormalizeEmail(email)
	rec, err := scanLoginAttempt(r.pool.QueryRow(ctx,
		`SELECT `+loginAttemptColumns+` FROM login_attempts WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoginAttemptRecord{Email: email}, nil
	}
	if err != nil {
		return model.LoginAttemptRecord{}, fmt.Errorf("get login attempts: %w", err)
	}
	return rec, nil
}

// Increment is a single upsert so concurrent failures for one email never lose a count.
// deactivated_at is stamped on the failure that first crosses the threshold.
func (r *LoginAttemptRepository) Increment(ctx context.Context, email string, threshold int, now time.Time) (model.LoginAttemptRecord, error) {
	email = model.NormalizeEmail(email)
	rec, err := scanLoginAttempt(r.pool.QueryRow(ctx,
		`INSERT INTO login_attempts AS la (email, attempts, is_deactivated, last_attempt, deactivated_at)
		 VALUES ($1, 1, 1 >= $2, $3, CASE WHEN 1 >= $2 THEN $3::timestamptz END)
		 ON CONFLICT (email) DO UPDATE SET
		    attempts       = la.attempts + 1,
		    last_attempt   = EXCLUDED.last_attempt,
		    is_deactivated = la.is_deactivated OR la.attempts + 1 >= $2,
		    deactivated_at = CASE
		        WHEN la.is_deactivated THEN la.deactivated_at
		        WHEN la.attempts + 1 >= $2 THEN EXCLUDED.last_attempt
		        ELSE la.deactivated_at
		    END
		 RETURNING `+loginAttemptColumns,
		email, threshold, now))
	if err != nil {
		return model.LoginAttemptRecord{}, fmt.Errorf("increment login attempts: %w", err)
	}
	return rec, nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, email string, now time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO login_attempts (email, attempts, is_deactivated, last_attempt)
		 VALUES ($1, 0, FALSE, $2)
		 ON CONFLICT (email) DO UPDATE SET
		    attempts = 0, is_deactivated = FALSE, deactivated_at = NULL, last_attempt = EXCLUDED.last_attempt`,
		model.NormalizeEmail(email), now)
	if err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

// Reactivate does not look at the current state; reactivating an active account
// only stamps reactivated_at.
func (r *LoginAttemptRepository) Reactivate(ctx context.Context, email string, now time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO login_attempts (email, attempts, is_deactivated, last_attempt, reactivated_at)
		 VALUES ($1, 0, FALSE, $2, $2)
		 ON CONFLICT (email) DO UPDATE SET
		    attempts = 0, is_deactivated = FALSE, deactivated_at = NULL, reactivated_at = EXCLUDED.reactivated_at`,
		model.NormalizeEmail(email), now)
	if err != nil {
		return fmt.Errorf("reactivate account: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) ListDeactivated(ctx context.Context) ([]model.LoginAttemptRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loginAttemptColumns+` FROM login_attempts
		 WHERE is_deactivated
		 ORDER BY deactivated_at DESC NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("list deactivated accounts: %w", err)
	}
	defer rows.Close()

	records := make([]model.LoginAttemptRecord, 0)
	for rows.Next() {
		rec, err := scanLoginAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan login attempts: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *LoginAttemptRepository) CountDeactivated(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM login_attempts WHERE is_deactivated`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count deactivated accounts: %w", err)
	}
	return count, nil
}
