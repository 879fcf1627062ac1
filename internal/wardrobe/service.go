package wardrobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"fashionlens-backend/internal/shared/storage/object"
	"fashionlens-backend/internal/shared/telemetry"
	"fashionlens-backend/internal/shared/util"
)

const defaultSeason = "all"

// ItemInput carries the mutable fields of a wardrobe item. Nil-able fields
// on update mean "leave unchanged".
type ItemInput struct {
	Name     string
	Category string
	Color    string
	Season   string
}

// ImageUpload is an optional image attached to a create or update request.
type ImageUpload struct {
	Name string
	Data []byte
}

// Service contains wardrobe business logic.
type Service struct {
	Repo              Repo
	Store             object.ObjectStore
	AllowedExtensions []string
}

// Create adds a wardrobe item. An invalid or missing image falls back to a
// placeholder URL derived from the item name.
func (s *Service) Create(ctx context.Context, userID string, input ItemInput, image *ImageUpload) (Item, error) {
	if userID == "" {
		return Item{}, errors.New("userID is required")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || strings.TrimSpace(input.Category) == "" {
		return Item{}, errors.New("name and category are required")
	}

	season := strings.TrimSpace(input.Season)
	if season == "" {
		season = defaultSeason
	}

	imageURL := s.storeImage(ctx, userID, image)
	if imageURL == "" {
		imageURL = placeholderURL(input.Name)
	}

	now := time.Now().UTC()
	item := Item{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      input.Name,
		Category:  NormalizeCategory(input.Category),
		Color:     strings.TrimSpace(input.Color),
		Season:    season,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Get returns an item by ID, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, itemID string) (Item, error) {
	item, err := s.Repo.GetByID(ctx, itemID)
	if err != nil {
		return Item{}, err
	}
	if item.UserID != userID {
		return Item{}, ErrForbidden
	}
	return item, nil
}

// List returns all of the user's items, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Update modifies the provided fields of an owned item. Empty input fields
// are left unchanged.
func (s *Service) Update(ctx context.Context, userID, itemID string, input ItemInput, image *ImageUpload) (Item, error) {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return Item{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		item.Category = NormalizeCategory(category)
	}
	if color := strings.TrimSpace(input.Color); color != "" {
		item.Color = color
	}
	if season := strings.TrimSpace(input.Season); season != "" {
		item.Season = season
	}
	if imageURL := s.storeImage(ctx, userID, image); imageURL != "" {
		item.ImageURL = imageURL
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes an owned item.
func (s *Service) Delete(ctx context.Context, userID, itemID string) error {
	if _, err := s.Get(ctx, userID, itemID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, itemID)
}

// storeImage persists a valid upload and returns its public URL, or "" when
// there is nothing usable to store.
func (s *Service) storeImage(ctx context.Context, userID string, image *ImageUpload) string {
	if image == nil || image.Name == "" || len(image.Data) == 0 {
		return ""
	}
	if !s.extensionAllowed(image.Name) {
		telemetry.Info("wardrobe.image_skipped", map[string]any{
			"file_name": image.Name,
			"reason":    "extension",
		})
		return ""
	}
	key, _, _, err := s.Store.Save(ctx, userID, image.Name, bytes.NewReader(image.Data))
	if err != nil {
		telemetry.Warn("wardrobe.image_store_failed", map[string]any{"error": err.Error()})
		return ""
	}
	return "/uploads/" + key
}

func (s *Service) extensionAllowed(name string) bool {
	ext := util.FileExtension(name)
	if ext == "" {
		return false
	}
	for _, allowed := range s.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func placeholderURL(name string) string {
	return fmt.Sprintf("/placeholder.svg?height=200&width=200&text=%s", url.QueryEscape(name))
}
