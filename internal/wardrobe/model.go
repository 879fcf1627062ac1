package wardrobe

import (
	"strings"
	"time"
)

// Categories a wardrobe item may belong to. Anything else is coerced to
// CategoryOther so the closet views stay enumerable.
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryDresses     = "dresses"
	CategoryOuterwear   = "outerwear"
	CategoryFootwear    = "footwear"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

var knownCategories = map[string]struct{}{
	CategoryTops:        {},
	CategoryBottoms:     {},
	CategoryDresses:     {},
	CategoryOuterwear:   {},
	CategoryFootwear:    {},
	CategoryAccessories: {},
	CategoryOther:       {},
}

// NormalizeCategory lowercases and validates a category, mapping unknown
// values to CategoryOther.
func NormalizeCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := knownCategories[category]; ok {
		return category
	}
	return CategoryOther
}

// Item is a single wardrobe entry.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Season    string    `json:"season"`
	ImageURL  string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
