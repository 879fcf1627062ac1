package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Analysis
	byUser map[string][]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Analysis),
		byUser: make(map[string][]Analysis),
	}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	r.byUser[analysis.UserID] = append(r.byUser[analysis.UserID], analysis)
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// ListByUser returns the user's analyses, newest first, skipping offset
// records and capping the result at limit.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := append([]Analysis(nil), r.byUser[userID]...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if offset > 0 {
		if offset >= len(items) {
			return []Analysis{}, nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// CountByUser returns the total number of analyses for a user.
func (r *MemoryRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]), nil
}

// CountByUserSince counts analyses created at or after the given time.
func (r *MemoryRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, a := range r.byUser[userID] {
		if !a.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// AverageScoreByUser returns the mean overall score across the user's
// analyses, or 0 when the user has none.
func (r *MemoryRepo) AverageScoreByUser(ctx context.Context, userID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.byUser[userID]
	if len(items) == 0 {
		return 0, nil
	}
	var sum float64
	for _, a := range items {
		sum += a.Result.OverallScore
	}
	return sum / float64(len(items)), nil
}

// AverageScoreByUserSince is like AverageScoreByUser but only counts
// analyses created at or after the given time.
func (r *MemoryRepo) AverageScoreByUserSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	count := 0
	for _, a := range r.byUser[userID] {
		if a.CreatedAt.Before(since) {
			continue
		}
		sum += a.Result.OverallScore
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// ScoreTrend buckets the user's analyses by calendar month and returns the
// average score and count per month, oldest first.
func (r *MemoryRepo) ScoreTrend(ctx context.Context, userID string, since time.Time) ([]ScorePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	buckets := make(map[time.Time]*ScorePoint)
	for _, a := range r.byUser[userID] {
		if a.CreatedAt.Before(since) {
			continue
		}
		month := time.Date(a.CreatedAt.Year(), a.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		point, ok := buckets[month]
		if !ok {
			point = &ScorePoint{Month: month}
			buckets[month] = point
		}
		point.AvgScore += a.Result.OverallScore
		point.Count++
	}
	points := make([]ScorePoint, 0, len(buckets))
	for _, point := range buckets {
		point.AvgScore /= float64(point.Count)
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month.Before(points[j].Month)
	})
	return points, nil
}

var _ Repo = (*MemoryRepo)(nil)
