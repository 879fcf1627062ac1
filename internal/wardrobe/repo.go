package wardrobe

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("item not found")
	ErrForbidden = errors.New("forbidden")
)

// Repo defines persistence operations for wardrobe items.
type Repo interface {
	Create(ctx context.Context, item Item) error
	GetByID(ctx context.Context, itemID string) (Item, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, itemID string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
}
