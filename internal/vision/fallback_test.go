package vision

import "testing"

func TestFallbackGenerateRanges(t *testing.T) {
	f := NewFallbackWithSeed(42)

	for i := 0; i < 100; i++ {
		got := f.Generate()

		if got.OverallScore < 6.5 || got.OverallScore > 9.5 {
			t.Fatalf("OverallScore = %v, want within [6.5, 9.5]", got.OverallScore)
		}
		if got.ColorHarmony < 70 || got.ColorHarmony > 95 {
			t.Fatalf("ColorHarmony = %d, want within [70, 95]", got.ColorHarmony)
		}
		if got.Fit < 75 || got.Fit > 95 {
			t.Fatalf("Fit = %d, want within [75, 95]", got.Fit)
		}
		if got.Sustainability.Score < 60 || got.Sustainability.Score > 90 {
			t.Fatalf("Sustainability.Score = %d, want within [60, 90]", got.Sustainability.Score)
		}
		if got.Style == "" || got.BodyShape == "" || got.Sustainability.Feedback == "" {
			t.Fatalf("expected populated string fields, got %+v", got)
		}
		if len(got.Occasion) == 0 || len(got.Fabrics) == 0 || len(got.Brands) == 0 || len(got.Recommendations) == 0 {
			t.Fatalf("expected populated list fields, got %+v", got)
		}
	}
}

func TestFallbackGenerateVaries(t *testing.T) {
	f := NewFallbackWithSeed(7)

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		got := f.Generate()
		key := got.Style + "|" + got.BodyShape
		seen[key] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied results across calls, got %d distinct", len(seen))
	}
}

func TestFallbackGenerateDoesNotShareSlices(t *testing.T) {
	f := NewFallbackWithSeed(1)

	a := f.Generate()
	a.Occasion[0] = "mutated"

	for i := 0; i < 20; i++ {
		if b := f.Generate(); len(b.Occasion) > 0 && b.Occasion[0] == "mutated" {
			t.Fatal("Generate returned a shared slice")
		}
	}
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	got := Normalize(OutfitAnalysis{})

	if got.Style != "Unknown" || got.BodyShape != "Unknown" || got.Sustainability.Feedback != "Unknown" {
		t.Fatalf("expected Unknown string fields, got %+v", got)
	}
	if got.Occasion == nil || got.Fabrics == nil || got.Brands == nil || got.Recommendations == nil {
		t.Fatalf("expected non-nil slices, got %+v", got)
	}
}

func TestNormalizeKeepsPopulatedFields(t *testing.T) {
	in := OutfitAnalysis{
		OverallScore: 8.2,
		Style:        "Formal",
		Occasion:     []string{"Wedding Guest"},
	}

	got := Normalize(in)

	if got.Style != "Formal" {
		t.Fatalf("Style = %q, want Formal", got.Style)
	}
	if got.OverallScore != 8.2 {
		t.Fatalf("OverallScore = %v, want 8.2", got.OverallScore)
	}
	if len(got.Occasion) != 1 || got.Occasion[0] != "Wedding Guest" {
		t.Fatalf("Occasion = %v, want [Wedding Guest]", got.Occasion)
	}
}
