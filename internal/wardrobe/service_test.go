package wardrobe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fashionlens-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:              repo,
		Store:             local.New(t.TempDir()),
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"},
	}
	return svc, repo
}

func TestCreateUsesPlaceholderWithoutImage(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.Create(context.Background(), "user-1", ItemInput{Name: "Blue Jacket", Category: "Outerwear"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(item.ImageURL, "/placeholder.svg") {
		t.Fatalf("expected placeholder image, got %q", item.ImageURL)
	}
	if item.Category != CategoryOuterwear {
		t.Fatalf("category = %q, want %q", item.Category, CategoryOuterwear)
	}
	if item.Season != "all" {
		t.Fatalf("season = %q, want all", item.Season)
	}
}

func TestCreateStoresValidImage(t *testing.T) {
	svc, _ := newTestService(t)

	image := &ImageUpload{Name: "jacket.png", Data: []byte("png bytes")}
	item, err := svc.Create(context.Background(), "user-1", ItemInput{Name: "Jacket", Category: "tops"}, image)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(item.ImageURL, "/uploads/") {
		t.Fatalf("expected stored image URL, got %q", item.ImageURL)
	}
}

func TestCreateCoercesUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.Create(context.Background(), "user-1", ItemInput{Name: "Thing", Category: "spacesuits"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Category != CategoryOther {
		t.Fatalf("category = %q, want %q", item.Category, CategoryOther)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), "user-1", ItemInput{Name: "Shirt", Category: "tops", Color: "white"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-1", created.ID, ItemInput{Color: "blue"}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Shirt" || updated.Category != CategoryTops {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Color != "blue" {
		t.Fatalf("color = %q, want blue", updated.Color)
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), "owner", ItemInput{Name: "Boots", Category: "footwear"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "intruder", created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Get: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "intruder", created.ID, ItemInput{Name: "Mine"}, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "intruder", created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete: expected ErrForbidden, got %v", err)
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), "user-1", ItemInput{Name: "Hat", Category: "accessories"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
