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

const claimColumns = `id, item_id, item_name, user_id, user_name, proof_description,
	proof_image, status, admin_notes, created_at, updated_at`

type ClaimRepository struct {
	pool *pgxpool.Pool
}

func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{pool: pool}
}

func scanClaim(row pgx.Row) (model.ClaimRequest, error) {
	var c model.ClaimRequest
	err := row.Scan(&c.ID, &c.ItemID, &c.ItemName, &c.UserID, &c.UserName, &c.ProofDescription,
		&c.ProofImage, &c.Status, &c.AdminNotes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ClaimRepository) queryClaims(ctx context.Context, op string, sql string, args ...any) ([]model.ClaimRequest, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	claims := make([]model.ClaimRequest, 0)
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// Create relies on the partial unique index over pending (item_id, user_id) pairs
// to reject a second pending claim that slipped past the service check.
func (r *ClaimRepository) Create(ctx context.Context, c model.ClaimRequest) (model.ClaimRequest, error) {
	created, err := scanClaim(r.pool.QueryRow(ctx,
		`INSERT INTO claims (id, item_id, item_name, user_id, user_name, proof_description,
		                     proof_image, status, admin_notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+claimColumns,
		c.ID, c.ItemID, c.ItemName, c.UserID, c.UserName, c.ProofDescription,
		c.ProofImage, c.Status, c.AdminNotes, c.CreatedAt, c.UpdatedAt))
	if isUniqueViolation(err) {
		return model.ClaimRequest{}, model.ErrDuplicateClaim
	}
	if isInvalidUUID(err) {
		return model.ClaimRequest{}, model.ErrItemNotFound
	}
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("create claim: %w", err)
	}
	return created, nil
}

func (r *ClaimRepository) Get(ctx context.Context, id string) (model.ClaimRequest, error) {
	c, err := scanClaim(r.pool.QueryRow(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return model.ClaimRequest{}, model.ErrClaimNotFound
	}
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

func (r *ClaimRepository) ListPending(ctx context.Context) ([]model.ClaimRequest, error) {
	return r.queryClaims(ctx, "list pending claims",
		`SELECT `+claimColumns+` FROM claims WHERE status = 'pending' ORDER BY created_at DESC`)
}

func (r *ClaimRepository) ListByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error) {
	return r.queryClaims(ctx, "list user claims",
		`SELECT `+claimColumns+` FROM claims WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *ClaimRepository) ListApprovedByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error) {
	return r.queryClaims(ctx, "list approved claims",
		`SELECT `+claimColumns+` FROM claims
		 WHERE user_id = $1 AND status = 'approved'
		 ORDER BY updated_at DESC`, userID)
}

func (r *ClaimRepository) ListAll(ctx context.Context) ([]model.ClaimRequest, error) {
	return r.queryClaims(ctx, "list claims",
		`SELECT `+claimColumns+` FROM claims ORDER BY created_at DESC`)
}

// SetStatus is a conditional update: concurrent reviewers race on the WHERE clause
// and only one of them moves the claim out of from.
func (r *ClaimRepository) SetStatus(ctx context.Context, id string, from model.ClaimStatus, to model.ClaimStatus, notes string, at time.Time) (model.ClaimRequest, error) {
	updated, err := scanClaim(r.pool.QueryRow(ctx,
		`UPDATE claims SET status = $3, admin_notes = $4, updated_at = $5
		 WHERE id = $1 AND status = $2
		 RETURNING `+claimColumns,
		id, from, to, notes, at))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) && !isInvalidUUID(err) {
		return model.ClaimRequest{}, fmt.Errorf("set claim status: %w", err)
	}

	// Distinguish a missing claim from one that already left from.
	if _, getErr := r.Get(ctx, id); getErr != nil {
		return model.ClaimRequest{}, getErr
	}
	return model.ClaimRequest{}, model.ErrClaimNotPending
}

func (r *ClaimRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM claims WHERE status = 'pending'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending claims: %w", err)
	}
	return count, nil
}

func (r *ClaimRepository) ExistsPendingFor(ctx context.Context, itemID string, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM claims WHERE item_id = $1 AND user_id = $2 AND status = 'pending')`,
		itemID, userID).Scan(&exists)
	if isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check pending claim: %w", err)
	}
	return exists, nil
}

func (r *ClaimRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if isInvalidUUID(err) {
		return model.ErrClaimNotFound
	}
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrClaimNotFound
	}
	return nil
}
