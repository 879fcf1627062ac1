package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fashionlens-backend/internal/vision"
)

func TestAnalyzeDropsUnsupportedFiles(t *testing.T) {
	analyzer := &stubAnalyzer{result: vision.OutfitAnalysis{OverallScore: 8.0, Style: "Casual"}}
	svc, _ := newTestService(t, analyzer)

	files := []UploadFile{
		{Name: "look.png", Data: []byte("png bytes")},
		{Name: "notes.txt", Data: []byte("not an image")},
		{Name: "script.exe", Data: []byte("nope")},
	}

	analysis, err := svc.Analyze(context.Background(), "user-1", files)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Images) != 1 {
		t.Fatalf("expected 1 stored image, got %d", len(analysis.Images))
	}
	if analysis.Images[0].FileName != "look.png" {
		t.Fatalf("stored wrong file: %+v", analysis.Images[0])
	}
	if !strings.HasPrefix(analysis.Images[0].URL, "/uploads/") {
		t.Fatalf("expected public URL under /uploads/, got %q", analysis.Images[0].URL)
	}
	if len(analyzer.lastImages) != 1 {
		t.Fatalf("analyzer received %d images, want 1", len(analyzer.lastImages))
	}
}

func TestAnalyzeRejectsWhenNothingValid(t *testing.T) {
	analyzer := &stubAnalyzer{}
	svc, _ := newTestService(t, analyzer)

	files := []UploadFile{
		{Name: "notes.txt", Data: []byte("not an image")},
	}

	if _, err := svc.Analyze(context.Background(), "user-1", files); !errors.Is(err, ErrNoValidFiles) {
		t.Fatalf("expected ErrNoValidFiles, got %v", err)
	}
	if analyzer.calls != 0 {
		t.Fatalf("analyzer should not run, got %d calls", analyzer.calls)
	}
}

func TestAnalyzeAcceptsUppercaseExtensions(t *testing.T) {
	analyzer := &stubAnalyzer{result: vision.OutfitAnalysis{Style: "Formal"}}
	svc, _ := newTestService(t, analyzer)

	files := []UploadFile{{Name: "PHOTO.JPG", Data: []byte("jpg bytes")}}

	analysis, err := svc.Analyze(context.Background(), "user-1", files)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Images) != 1 {
		t.Fatalf("expected 1 stored image, got %d", len(analysis.Images))
	}
}

func TestAnalyzeNormalizesResult(t *testing.T) {
	analyzer := &stubAnalyzer{result: vision.OutfitAnalysis{OverallScore: 7.0}}
	svc, repo := newTestService(t, analyzer)

	analysis, err := svc.Analyze(context.Background(), "user-1", []UploadFile{{Name: "a.png", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Result.Style != "Unknown" {
		t.Fatalf("Style = %q, want Unknown", analysis.Result.Style)
	}
	if analysis.Result.Occasion == nil || analysis.Result.Recommendations == nil {
		t.Fatalf("expected non-nil slices, got %+v", analysis.Result)
	}

	stored, err := repo.GetByID(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Result.Style != "Unknown" {
		t.Fatalf("persisted Style = %q, want Unknown", stored.Result.Style)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, repo := newTestService(t, &stubAnalyzer{})

	seeded := Analysis{ID: "a-1", UserID: "owner", CreatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), seeded); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "intruder", "a-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := svc.Get(context.Background(), "owner", "a-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "a-1" {
		t.Fatalf("Get returned %+v", got)
	}
}

func TestHistoryOrdersNewestFirstAndLimits(t *testing.T) {
	svc, repo := newTestService(t, &stubAnalyzer{})

	base := time.Now().UTC()
	for i := 0; i < 15; i++ {
		a := Analysis{
			ID:        "a-" + string(rune('a'+i)),
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, err := svc.History(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != defaultHistoryLimit {
		t.Fatalf("expected default limit %d, got %d", defaultHistoryLimit, len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("history not newest-first at index %d", i)
		}
	}

	skipped, err := svc.History(context.Background(), "user-1", 5, 2)
	if err != nil {
		t.Fatalf("History with skip: %v", err)
	}
	if len(skipped) != 5 {
		t.Fatalf("expected 5 items, got %d", len(skipped))
	}
	if skipped[0].ID != items[2].ID {
		t.Fatalf("skip=2 starts at %q, want %q", skipped[0].ID, items[2].ID)
	}
}
