package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Outfit items are JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new recommendation.
func (r *PGRepo) Create(ctx context.Context, rec Recommendation) error {
	const query = `
INSERT INTO recommendations (id, user_id, name, description, score, items, image, liked, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	itemsPayload, err := json.Marshal(rec.Items)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Name,
		rec.Description,
		rec.Score,
		itemsPayload,
		rec.Image,
		rec.Liked,
		rec.Comment,
		rec.CreatedAt,
	)
	return err
}

// GetByID returns a recommendation by ID.
func (r *PGRepo) GetByID(ctx context.Context, recID string) (Recommendation, error) {
	const query = `
SELECT id, user_id, name, description, score, items, image, liked, comment, created_at
FROM recommendations
WHERE id = $1
LIMIT 1`
	var rec Recommendation
	var itemsPayload []byte
	var liked sql.NullBool
	err := r.DB.QueryRowContext(ctx, query, recID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&rec.Description,
		&rec.Score,
		&itemsPayload,
		&rec.Image,
		&liked,
		&rec.Comment,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Recommendation{}, ErrNotFound
	}
	if err != nil {
		return Recommendation{}, err
	}
	if len(itemsPayload) > 0 {
		if err := json.Unmarshal(itemsPayload, &rec.Items); err != nil {
			return Recommendation{}, err
		}
	}
	if liked.Valid {
		rec.Liked = &liked.Bool
	}
	return rec, nil
}

// UpdateFeedback records the user's reaction.
func (r *PGRepo) UpdateFeedback(ctx context.Context, recID string, feedback Feedback) error {
	const query = `UPDATE recommendations SET liked = $2, comment = $3 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, recID, feedback.Liked, feedback.Comment)
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

var _ Repo = (*PGRepo)(nil)
