package dashboard

import (
	"context"
	"testing"
	"time"

	"fashionlens-backend/internal/analyses"
	"fashionlens-backend/internal/vision"
	"fashionlens-backend/internal/wardrobe"
)

func newTestService(t *testing.T, now time.Time) (*Service, *analyses.MemoryRepo, *wardrobe.MemoryRepo) {
	t.Helper()
	analysesRepo := analyses.NewMemoryRepo()
	wardrobeRepo := wardrobe.NewMemoryRepo()
	svc := NewService(analysesRepo, wardrobeRepo)
	svc.now = func() time.Time { return now }
	return svc, analysesRepo, wardrobeRepo
}

func seedAnalysis(t *testing.T, repo *analyses.MemoryRepo, id, userID string, score float64, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), analyses.Analysis{
		ID:        id,
		UserID:    userID,
		Result:    vision.Normalize(vision.OutfitAnalysis{OverallScore: score}),
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
}

func seedItem(t *testing.T, repo *wardrobe.MemoryRepo, id, userID, name string, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), wardrobe.Item{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Category:  wardrobe.CategoryTops,
		Season:    "all",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func TestAnalyticsEmpty(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)

	got, err := svc.Analytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if got.TotalAnalyses.Value != 0 || got.TotalAnalyses.Trend != "0%" {
		t.Errorf("totalAnalyses = %+v", got.TotalAnalyses)
	}
	if got.WardrobeItems.Trend != "No new items" {
		t.Errorf("wardrobeItems trend = %q", got.WardrobeItems.Trend)
	}
	if got.StyleScoreAverage.Value != "No data" || got.StyleScoreAverage.Trend != "0" {
		t.Errorf("styleScoreAverage = %+v", got.StyleScoreAverage)
	}
	if got.RecommendationsViewed.Value != 0 || got.RecommendationsViewed.Trend != "0%" {
		t.Errorf("recommendationsViewed = %+v", got.RecommendationsViewed)
	}
}

func TestAnalyticsTrends(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, analysesRepo, wardrobeRepo := newTestService(t, now)

	seedAnalysis(t, analysesRepo, "a1", "u1", 6.0, now.Add(-60*24*time.Hour))
	seedAnalysis(t, analysesRepo, "a2", "u1", 8.0, now.Add(-24*time.Hour))
	seedItem(t, wardrobeRepo, "w1", "u1", "Denim Jacket", now.Add(-2*24*time.Hour))

	got, err := svc.Analytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if got.TotalAnalyses.Value != 2 {
		t.Errorf("totalAnalyses value = %v, want 2", got.TotalAnalyses.Value)
	}
	if got.TotalAnalyses.Trend != "+50.0%" {
		t.Errorf("totalAnalyses trend = %q, want +50.0%%", got.TotalAnalyses.Trend)
	}
	if got.WardrobeItems.Value != 1 || got.WardrobeItems.Trend != "+1 new" {
		t.Errorf("wardrobeItems = %+v", got.WardrobeItems)
	}
	if got.RecommendationsViewed.Value != 4 || got.RecommendationsViewed.Trend != "+50.0%" {
		t.Errorf("recommendationsViewed = %+v", got.RecommendationsViewed)
	}
	// all-time average is 7.0, last-month average is 8.0
	if got.StyleScoreAverage.Value != "7.0/10" {
		t.Errorf("styleScoreAverage value = %v", got.StyleScoreAverage.Value)
	}
	if got.StyleScoreAverage.Trend != "+1.0" {
		t.Errorf("styleScoreAverage trend = %q", got.StyleScoreAverage.Trend)
	}
}

func TestAnalyticsScoreTrendWithoutRecentAnalyses(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, analysesRepo, _ := newTestService(t, now)

	seedAnalysis(t, analysesRepo, "a1", "u1", 7.5, now.Add(-90*24*time.Hour))

	got, err := svc.Analytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	// no analyses inside the window, so the trend stays flat
	if got.StyleScoreAverage.Trend != "0.0" {
		t.Errorf("styleScoreAverage trend = %q, want 0.0", got.StyleScoreAverage.Trend)
	}
	if got.TotalAnalyses.Trend != "0.0%" {
		t.Errorf("totalAnalyses trend = %q, want 0.0%%", got.TotalAnalyses.Trend)
	}
}

func TestRecentActivityMergesAndCaps(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, analysesRepo, wardrobeRepo := newTestService(t, now)

	seedAnalysis(t, analysesRepo, "a1", "u1", 8.2, now.Add(-10*time.Minute))
	seedAnalysis(t, analysesRepo, "a2", "u1", 7.1, now.Add(-3*time.Hour))
	seedAnalysis(t, analysesRepo, "a3", "u1", 6.9, now.Add(-2*24*time.Hour))
	seedAnalysis(t, analysesRepo, "a4", "u1", 9.0, now.Add(-5*24*time.Hour))
	seedItem(t, wardrobeRepo, "w1", "u1", "Silk Scarf", now.Add(-time.Hour))
	seedItem(t, wardrobeRepo, "w2", "u1", "Loafers", now.Add(-4*24*time.Hour))
	seedItem(t, wardrobeRepo, "w3", "u1", "Raincoat", now.Add(-6*24*time.Hour))

	got, err := svc.RecentActivity(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	// three newest analyses plus two newest wardrobe items, merged newest first
	wantDescriptions := []string{
		"Outfit analysis completed - Score: 8.2/10",
		"New item 'Silk Scarf' added to wardrobe",
		"Outfit analysis completed - Score: 7.1/10",
		"Outfit analysis completed - Score: 6.9/10",
		"New item 'Loafers' added to wardrobe",
	}
	for i, want := range wantDescriptions {
		if got[i].Description != want {
			t.Errorf("activity[%d] = %q, want %q", i, got[i].Description, want)
		}
	}
	wantTimes := []string{
		"10 minutes ago",
		"1 hour ago",
		"3 hours ago",
		"2 days ago",
		"4 days ago",
	}
	for i, want := range wantTimes {
		if got[i].Time != want {
			t.Errorf("activity[%d] time = %q, want %q", i, got[i].Time, want)
		}
	}
	if got[0].Type != "analysis" || got[1].Type != "wardrobe" {
		t.Errorf("types = %q, %q", got[0].Type, got[1].Type)
	}
}

func TestRecentActivityUnnamedItem(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _, wardrobeRepo := newTestService(t, now)

	seedItem(t, wardrobeRepo, "w1", "u1", "", now.Add(-time.Minute))

	got, err := svc.RecentActivity(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Description != "New item 'Unnamed item' added to wardrobe" {
		t.Errorf("description = %q", got[0].Description)
	}
	if got[0].Time != "1 minute ago" {
		t.Errorf("time = %q", got[0].Time)
	}
}

func TestStyleTrendsGroupsByMonth(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, analysesRepo, _ := newTestService(t, now)

	seedAnalysis(t, analysesRepo, "a1", "u1", 8.0, time.Date(2025, time.April, 3, 10, 0, 0, 0, time.UTC))
	seedAnalysis(t, analysesRepo, "a2", "u1", 7.0, time.Date(2025, time.April, 20, 10, 0, 0, 0, time.UTC))
	seedAnalysis(t, analysesRepo, "a3", "u1", 9.0, time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC))
	// outside the six-month window
	seedAnalysis(t, analysesRepo, "a4", "u1", 5.0, time.Date(2024, time.October, 5, 10, 0, 0, 0, time.UTC))

	got, err := svc.StyleTrends(context.Background(), "u1")
	if err != nil {
		t.Fatalf("StyleTrends: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Apr" || got[0].Score != 7.5 || got[0].Count != 2 {
		t.Errorf("point[0] = %+v", got[0])
	}
	if got[1].Name != "May" || got[1].Score != 9.0 || got[1].Count != 1 {
		t.Errorf("point[1] = %+v", got[1])
	}
}
