package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fashionlens-backend/internal/vision"
)

// PGRepo implements Repo using Postgres. Images and results are JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, user_id, images, result, created_at)
VALUES ($1, $2, $3, $4, $5)`
	imagesPayload, err := json.Marshal(analysis.Images)
	if err != nil {
		return err
	}
	resultPayload, err := json.Marshal(analysis.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		imagesPayload,
		resultPayload,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, images, result, created_at
FROM analyses
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, analysisID)
	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

// ListByUser returns the user's analyses, newest first, skipping offset
// records and capping the result at limit.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	const query = `
SELECT id, user_id, images, result, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Analysis, 0, limit)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, analysis)
	}
	return items, rows.Err()
}

// CountByUser returns the total number of analyses for a user.
func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM analyses WHERE user_id = $1`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// CountByUserSince counts analyses created at or after the given time.
func (r *PGRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM analyses WHERE user_id = $1 AND created_at >= $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, since).Scan(&count)
	return count, err
}

// AverageScoreByUser returns the mean overall score across the user's analyses.
func (r *PGRepo) AverageScoreByUser(ctx context.Context, userID string) (float64, error) {
	const query = `
SELECT COALESCE(AVG((result->>'overallScore')::float), 0)
FROM analyses
WHERE user_id = $1`
	var avg float64
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&avg)
	return avg, err
}

// AverageScoreByUserSince is like AverageScoreByUser but only counts
// analyses created at or after the given time.
func (r *PGRepo) AverageScoreByUserSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	const query = `
SELECT COALESCE(AVG((result->>'overallScore')::float), 0)
FROM analyses
WHERE user_id = $1 AND created_at >= $2`
	var avg float64
	err := r.DB.QueryRowContext(ctx, query, userID, since).Scan(&avg)
	return avg, err
}

// ScoreTrend buckets the user's analyses by calendar month and returns the
// average score and count per month, oldest first.
func (r *PGRepo) ScoreTrend(ctx context.Context, userID string, since time.Time) ([]ScorePoint, error) {
	const query = `
SELECT date_trunc('month', created_at) AS month,
       COALESCE(AVG((result->>'overallScore')::float), 0),
       COUNT(*)
FROM analyses
WHERE user_id = $1 AND created_at >= $2
GROUP BY 1
ORDER BY 1`
	rows, err := r.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]ScorePoint, 0)
	for rows.Next() {
		var p ScorePoint
		if err := rows.Scan(&p.Month, &p.AvgScore, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var imagesPayload []byte
	var resultPayload []byte
	if err := row.Scan(&a.ID, &a.UserID, &imagesPayload, &resultPayload, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	if len(imagesPayload) > 0 {
		if err := json.Unmarshal(imagesPayload, &a.Images); err != nil {
			return Analysis{}, err
		}
	}
	if len(resultPayload) > 0 {
		if err := json.Unmarshal(resultPayload, &a.Result); err != nil {
			return Analysis{}, err
		}
	}
	a.Result = vision.Normalize(a.Result)
	return a, nil
}

var _ Repo = (*PGRepo)(nil)
