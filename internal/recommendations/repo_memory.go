package recommendations

import (
	"context"
	"sync"
)

// MemoryRepo stores recommendations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Recommendation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Recommendation)}
}

// Create stores the recommendation.
func (r *MemoryRepo) Create(ctx context.Context, rec Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

// GetByID returns a recommendation by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recID string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[recID]
	if !ok {
		return Recommendation{}, ErrNotFound
	}
	return rec, nil
}

// UpdateFeedback records the user's reaction.
func (r *MemoryRepo) UpdateFeedback(ctx context.Context, recID string, feedback Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[recID]
	if !ok {
		return ErrNotFound
	}
	liked := feedback.Liked
	rec.Liked = &liked
	rec.Comment = feedback.Comment
	r.byID[recID] = rec
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
