package wardrobe

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores wardrobe items in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Item
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Item)}
}

// Create stores the item.
func (r *MemoryRepo) Create(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

// GetByID returns an item by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[itemID]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// ListByUser returns the user's items, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Item, 0)
	for _, item := range r.byID {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Update replaces an existing item.
func (r *MemoryRepo) Update(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[item.ID]; !ok {
		return ErrNotFound
	}
	r.byID[item.ID] = item
	return nil
}

// Delete removes an item.
func (r *MemoryRepo) Delete(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, itemID)
	return nil
}

// CountByUser returns the number of items the user owns.
func (r *MemoryRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, item := range r.byID {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}

// CountByUserSince counts items created at or after the given time.
func (r *MemoryRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, item := range r.byID {
		if item.UserID == userID && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

var _ Repo = (*MemoryRepo)(nil)
