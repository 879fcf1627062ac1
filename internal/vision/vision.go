package vision

import "context"

// Sustainability scores the outfit's environmental footprint.
type Sustainability struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// OutfitAnalysis is the normalized result of an outfit analysis.
type OutfitAnalysis struct {
	OverallScore    float64        `json:"overallScore"`
	Style           string         `json:"style"`
	ColorHarmony    int            `json:"colorHarmony"`
	Fit             int            `json:"fit"`
	Occasion        []string       `json:"occasion"`
	BodyShape       string         `json:"bodyShape"`
	Fabrics         []string       `json:"fabrics"`
	Brands          []string       `json:"brands"`
	Sustainability  Sustainability `json:"sustainability"`
	Recommendations []string       `json:"recommendations"`
}

// Analyzer produces an outfit analysis from raw image bytes. It never fails:
// implementations fall back to generated results on any error, and report
// whether they did via usedFallback.
type Analyzer interface {
	Analyze(ctx context.Context, images [][]byte) (result OutfitAnalysis, usedFallback bool)
}

// Normalize fills gaps a model response may leave: empty string fields become
// "Unknown" and nil slices become empty so clients always see arrays.
func Normalize(a OutfitAnalysis) OutfitAnalysis {
	if a.Style == "" {
		a.Style = "Unknown"
	}
	if a.BodyShape == "" {
		a.BodyShape = "Unknown"
	}
	if a.Sustainability.Feedback == "" {
		a.Sustainability.Feedback = "Unknown"
	}
	if a.Occasion == nil {
		a.Occasion = []string{}
	}
	if a.Fabrics == nil {
		a.Fabrics = []string{}
	}
	if a.Brands == nil {
		a.Brands = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return a
}
