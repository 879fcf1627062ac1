package recommendations

import (
	"context"
	"math"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"fashionlens-backend/internal/wardrobe"
)

type outfitTemplate struct {
	Name        string
	Description string
	Categories  []string
	BaseScore   float64
}

var outfitTemplates = []outfitTemplate{
	{Name: "Business Casual", Description: "Perfect for office days", Categories: []string{wardrobe.CategoryTops, wardrobe.CategoryBottoms, wardrobe.CategoryFootwear}, BaseScore: 8.5},
	{Name: "Weekend Casual", Description: "Relaxed weekend look", Categories: []string{wardrobe.CategoryTops, wardrobe.CategoryBottoms, wardrobe.CategoryFootwear}, BaseScore: 8.0},
	{Name: "Smart Evening", Description: "For dinner or evening events", Categories: []string{wardrobe.CategoryTops, wardrobe.CategoryBottoms, wardrobe.CategoryFootwear}, BaseScore: 8.5},
	{Name: "Layered Look", Description: "Stylish layered outfit", Categories: []string{wardrobe.CategoryTops, wardrobe.CategoryOuterwear, wardrobe.CategoryBottoms, wardrobe.CategoryFootwear}, BaseScore: 8.0},
}

var mockOutfits = []Recommendation{
	{
		Name:        "Business Casual",
		Description: "Perfect for office days",
		Score:       9.2,
		Items: []OutfitItem{
			{Name: "Blue Oxford Shirt", Image: "/placeholder.svg?height=100&width=100&text=Blue+Shirt"},
			{Name: "Khaki Chinos", Image: "/placeholder.svg?height=100&width=100&text=Khaki+Chinos"},
			{Name: "Brown Leather Shoes", Image: "/placeholder.svg?height=100&width=100&text=Brown+Shoes"},
		},
		Image: "/placeholder.svg?height=300&width=300&text=Business+Casual",
	},
	{
		Name:        "Weekend Casual",
		Description: "Relaxed weekend look",
		Score:       8.7,
		Items: []OutfitItem{
			{Name: "Gray T-Shirt", Image: "/placeholder.svg?height=100&width=100&text=Gray+Tshirt"},
			{Name: "Blue Jeans", Image: "/placeholder.svg?height=100&width=100&text=Blue+Jeans"},
			{Name: "White Sneakers", Image: "/placeholder.svg?height=100&width=100&text=White+Sneakers"},
		},
		Image: "/placeholder.svg?height=300&width=300&text=Weekend+Casual",
	},
	{
		Name:        "Smart Evening",
		Description: "For dinner or evening events",
		Score:       9.0,
		Items: []OutfitItem{
			{Name: "Black Shirt", Image: "/placeholder.svg?height=100&width=100&text=Black+Shirt"},
			{Name: "Dark Jeans", Image: "/placeholder.svg?height=100&width=100&text=Dark+Jeans"},
			{Name: "Black Leather Shoes", Image: "/placeholder.svg?height=100&width=100&text=Black+Shoes"},
		},
		Image: "/placeholder.svg?height=300&width=300&text=Smart+Evening",
	},
}

type seasonalTemplate struct {
	Name        string
	Description string
	Items       []OutfitItem
}

var seasonalTemplates = map[string]seasonalTemplate{
	"fall": {
		Name:        "Fall Essentials",
		Description: "Must-have items for fall",
		Items: []OutfitItem{
			{Name: "Beige Trench Coat", Image: "/placeholder.svg?height=100&width=100&text=Trench+Coat"},
			{Name: "Burgundy Sweater", Image: "/placeholder.svg?height=100&width=100&text=Burgundy+Sweater"},
			{Name: "Brown Boots", Image: "/placeholder.svg?height=100&width=100&text=Brown+Boots"},
		},
	},
	"winter": {
		Name:        "Winter Staples",
		Description: "Stay warm and stylish",
		Items: []OutfitItem{
			{Name: "Gray Wool Coat", Image: "/placeholder.svg?height=100&width=100&text=Wool+Coat"},
			{Name: "Black Turtleneck", Image: "/placeholder.svg?height=100&width=100&text=Turtleneck"},
			{Name: "Thermal Socks", Image: "/placeholder.svg?height=100&width=100&text=Thermal+Socks"},
		},
	},
	"spring": {
		Name:        "Spring Refresh",
		Description: "Refresh your wardrobe for spring",
		Items: []OutfitItem{
			{Name: "Light Jacket", Image: "/placeholder.svg?height=100&width=100&text=Light+Jacket"},
			{Name: "Floral Dress", Image: "/placeholder.svg?height=100&width=100&text=Floral+Dress"},
			{Name: "Canvas Sneakers", Image: "/placeholder.svg?height=100&width=100&text=Canvas+Sneakers"},
		},
	},
	"summer": {
		Name:        "Summer Essentials",
		Description: "Stay cool and stylish",
		Items: []OutfitItem{
			{Name: "Linen Shirt", Image: "/placeholder.svg?height=100&width=100&text=Linen+Shirt"},
			{Name: "Shorts", Image: "/placeholder.svg?height=100&width=100&text=Shorts"},
			{Name: "Sandals", Image: "/placeholder.svg?height=100&width=100&text=Sandals"},
		},
	},
}

// Engine builds outfit suggestions from the user's wardrobe, falling back to
// canned outfits for empty closets. Safe for concurrent use.
type Engine struct {
	Wardrobe wardrobe.Repo

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine seeds the engine from the current time.
func NewEngine(wardrobeRepo wardrobe.Repo) *Engine {
	return NewEngineWithSeed(wardrobeRepo, time.Now().UnixNano())
}

func NewEngineWithSeed(wardrobeRepo wardrobe.Repo, seed int64) *Engine {
	return &Engine{
		Wardrobe: wardrobeRepo,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Outfits assembles up to count outfit recommendations by filling each
// template category with a random wardrobe item. Templates the wardrobe
// cannot fill are topped up from the mock list.
func (e *Engine) Outfits(ctx context.Context, userID string, count int) ([]Recommendation, error) {
	if count <= 0 {
		count = 3
	}
	if count > len(outfitTemplates) {
		count = len(outfitTemplates)
	}

	items, err := e.Wardrobe.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return e.mockOutfits(count), nil
	}

	byCategory := make(map[string][]wardrobe.Item)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	out := make([]Recommendation, 0, count)
	for _, tmpl := range outfitTemplates[:count] {
		outfitItems := make([]OutfitItem, 0, len(tmpl.Categories))
		for _, category := range tmpl.Categories {
			candidates := byCategory[category]
			if len(candidates) == 0 {
				break
			}
			pick := candidates[e.intn(len(candidates))]
			outfitItems = append(outfitItems, OutfitItem{Name: pick.Name, Image: pick.ImageURL})
		}
		if len(outfitItems) != len(tmpl.Categories) {
			continue
		}
		out = append(out, Recommendation{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Score:       math.Round((tmpl.BaseScore+e.float64())*10) / 10,
			Items:       outfitItems,
			Image:       "/placeholder.svg?height=300&width=300&text=" + url.QueryEscape(tmpl.Name),
		})
	}

	if len(out) < count {
		out = append(out, e.mockOutfits(count-len(out))...)
	}
	return out, nil
}

// Seasonal suggests pieces for the given season, skipping items the user
// already owns. Unknown seasons default to fall.
func (e *Engine) Seasonal(ctx context.Context, userID, season string) (Recommendation, error) {
	tmpl, ok := seasonalTemplates[strings.ToLower(strings.TrimSpace(season))]
	if !ok {
		tmpl = seasonalTemplates["fall"]
	}

	items, err := e.Wardrobe.ListByUser(ctx, userID)
	if err != nil {
		return Recommendation{}, err
	}

	owned := make(map[string]struct{}, len(items))
	for _, item := range items {
		owned[strings.ToLower(item.Name)] = struct{}{}
	}

	filtered := make([]OutfitItem, 0, len(tmpl.Items))
	for _, item := range tmpl.Items {
		if _, has := owned[strings.ToLower(item.Name)]; !has {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		filtered = append(filtered, tmpl.Items...)
	}

	return Recommendation{
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Items:       filtered,
	}, nil
}

func (e *Engine) mockOutfits(count int) []Recommendation {
	if count > len(mockOutfits) {
		count = len(mockOutfits)
	}
	out := make([]Recommendation, count)
	for i := range out {
		out[i] = mockOutfits[i]
		out[i].Items = append([]OutfitItem(nil), mockOutfits[i].Items...)
	}
	return out
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}
