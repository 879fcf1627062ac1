package analyses

import (
	"context"
	"time"
)

// ScorePoint is a per-month aggregate of analysis scores.
type ScorePoint struct {
	Month    time.Time
	AvgScore float64
	Count    int
}

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	AverageScoreByUser(ctx context.Context, userID string) (float64, error)
	AverageScoreByUserSince(ctx context.Context, userID string, since time.Time) (float64, error)
	ScoreTrend(ctx context.Context, userID string, since time.Time) ([]ScorePoint, error)
}
