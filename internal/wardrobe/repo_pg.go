package wardrobe

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new wardrobe item.
func (r *PGRepo) Create(ctx context.Context, item Item) error {
	const query = `
INSERT INTO wardrobe_items (id, user_id, name, category, color, season, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Category,
		item.Color,
		item.Season,
		item.ImageURL,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

// GetByID returns an item by ID.
func (r *PGRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	const query = `
SELECT id, user_id, name, category, color, season, image_url, created_at, updated_at
FROM wardrobe_items
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, itemID)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return item, err
}

// ListByUser returns the user's items, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	const query = `
SELECT id, user_id, name, category, color, season, image_url, created_at, updated_at
FROM wardrobe_items
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update replaces the mutable fields of an existing item.
func (r *PGRepo) Update(ctx context.Context, item Item) error {
	const query = `
UPDATE wardrobe_items
SET name = $2, category = $3, color = $4, season = $5, image_url = $6, updated_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Color,
		item.Season,
		item.ImageURL,
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (r *PGRepo) Delete(ctx context.Context, itemID string) error {
	const query = `DELETE FROM wardrobe_items WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns the number of items the user owns.
func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM wardrobe_items WHERE user_id = $1`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// CountByUserSince counts items created at or after the given time.
func (r *PGRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM wardrobe_items WHERE user_id = $1 AND created_at >= $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, since).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Category,
		&item.Color,
		&item.Season,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

var _ Repo = (*PGRepo)(nil)
