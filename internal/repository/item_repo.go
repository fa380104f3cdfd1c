package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lost-and-found/internal/model"
)

const itemColumns = `id, name, description, category, status, date_found,
	location_found, claim_location, image, created_at`

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func scanItem(row pgx.Row) (model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.Status, &it.DateFound,
		&it.LocationFound, &it.ClaimLocation, &it.Image, &it.CreatedAt)
	return it, err
}

func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Get(ctx context.Context, id string) (model.Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return model.Item{}, model.ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, it model.Item) (model.Item, error) {
	created, err := scanItem(r.pool.QueryRow(ctx,
		`INSERT INTO items (id, name, description, category, status, date_found,
		                    location_found, claim_location, image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+itemColumns,
		it.ID, it.Name, it.Description, it.Category, it.Status, it.DateFound,
		it.LocationFound, it.ClaimLocation, it.Image, it.CreatedAt))
	if err != nil {
		return model.Item{}, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

// Update writes only the non-nil patch fields.
func (r *ItemRepository) Update(ctx context.Context, id string, patch model.ItemPatch) (model.Item, error) {
	updated, err := scanItem(r.pool.QueryRow(ctx,
		`UPDATE items SET
		    name           = COALESCE($2, name),
		    description    = COALESCE($3, description),
		    category       = COALESCE($4, category),
		    status         = COALESCE($5, status),
		    date_found     = COALESCE($6, date_found),
		    location_found = COALESCE($7, location_found),
		    claim_location = COALESCE($8, claim_location),
		    image          = COALESCE($9, image)
		 WHERE id = $1
		 RETURNING `+itemColumns,
		id, patch.Name, patch.Description, patch.Category, patch.Status, patch.DateFound,
		patch.LocationFound, patch.ClaimLocation, patch.Image))
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return model.Item{}, model.ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if isInvalidUUID(err) {
		return model.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}
