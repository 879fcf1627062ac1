package recommendations

import "time"

// OutfitItem is one piece of a recommended outfit.
type OutfitItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Recommendation is a generated outfit suggestion, optionally annotated with
// user feedback.
type Recommendation struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Score       float64      `json:"score"`
	Items       []OutfitItem `json:"items"`
	Image       string       `json:"image"`
	Liked       *bool        `json:"liked,omitempty"`
	Comment     string       `json:"comment,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}
