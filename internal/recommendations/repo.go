package recommendations

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("recommendation not found")

// Feedback is the user's reaction to a recommendation.
type Feedback struct {
	Liked   bool
	Comment string
}

// Repo defines persistence operations for recommendations.
type Repo interface {
	Create(ctx context.Context, rec Recommendation) error
	GetByID(ctx context.Context, recID string) (Recommendation, error)
	UpdateFeedback(ctx context.Context, recID string, feedback Feedback) error
}
