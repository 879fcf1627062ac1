package analyses

import (
	"time"

	"fashionlens-backend/internal/vision"
)

// AnalysisImage records one stored upload that fed an analysis.
type AnalysisImage struct {
	FileName   string `json:"fileName"`
	StorageKey string `json:"storageKey"`
	URL        string `json:"url"`
	SizeBytes  int64  `json:"sizeBytes"`
	MimeType   string `json:"mimeType"`
}

// Analysis is a persisted outfit analysis.
type Analysis struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Images    []AnalysisImage       `json:"images"`
	Result    vision.OutfitAnalysis `json:"results"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ImageURLs returns the public URLs of the analysis images, in upload order.
func (a Analysis) ImageURLs() []string {
	urls := make([]string, 0, len(a.Images))
	for _, img := range a.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
