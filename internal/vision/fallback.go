package vision

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

var fallbackStyles = []string{
	"Smart Casual", "Business Casual", "Formal", "Casual",
	"Sporty", "Bohemian", "Minimalist", "Trendy",
}

var fallbackOccasions = [][]string{
	{"Office", "Business Meeting", "Professional Event"},
	{"Casual Dinner", "Date Night", "Social Gathering"},
	{"Weekend Outing", "Shopping", "Brunch"},
	{"Formal Event", "Wedding Guest", "Evening Party"},
	{"Work from Home", "Errands", "Relaxed Day"},
	{"Gym", "Sports Activity", "Active Lifestyle"},
	{"Beach", "Vacation", "Summer Day"},
	{"Concert", "Night Out", "Entertainment"},
}

var fallbackBodyShapes = []string{
	"Rectangle", "Pear", "Apple", "Hourglass", "Inverted Triangle", "Athletic",
}

var fallbackFabrics = [][]string{
	{"Cotton", "Denim", "Polyester"},
	{"Silk", "Wool", "Cashmere"},
	{"Linen", "Rayon", "Spandex"},
	{"Leather", "Suede", "Canvas"},
	{"Chiffon", "Satin", "Velvet"},
}

var fallbackBrands = [][]string{
	{"Unidentified", "Likely H&M", "Zara"},
	{"Nike", "Adidas", "Under Armour"},
	{"Gap", "Uniqlo", "J.Crew"},
	{"Designer Brand", "Luxury Label", "High-End"},
	{"Vintage", "Thrift Find", "Local Brand"},
}

var fallbackRecommendations = [][]string{
	{
		"Consider adding a statement accessory to elevate the look.",
		"The color palette works well together, but could benefit from a pop of color.",
		"The fit is good, but the shirt could be slightly more tailored.",
		"This outfit is versatile and appropriate for multiple casual settings.",
	},
	{
		"The overall composition is strong, but try experimenting with different textures.",
		"Consider swapping the shoes for something with more visual interest.",
		"Adding a belt could help define the silhouette better.",
		"This look could transition well from day to evening with minor adjustments.",
	},
	{
		"The proportions work well for your body type.",
		"Try incorporating more seasonal colors for better relevance.",
		"The layering technique is effective but could be refined.",
		"Consider the dress code requirements for your intended occasions.",
	},
	{
		"Bold color choices show confidence in personal style.",
		"The fit could be improved with some minor alterations.",
		"This outfit demonstrates good understanding of current trends.",
		"Adding complementary accessories would complete the look.",
	},
}

var fallbackSustainabilityFeedbacks = []string{
	"This outfit has moderate sustainability with mix of natural and synthetic materials.",
	"High sustainability score due to natural fibers and likely longevity of pieces.",
	"Lower sustainability due to fast fashion items, consider investing in quality pieces.",
	"Good balance of trendy and timeless pieces for sustainable wardrobe building.",
	"Excellent use of versatile pieces that can be styled multiple ways.",
}

// Fallback generates varied analysis results without calling a model.
// Safe for concurrent use.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallback seeds from the current time. Tests can pass a fixed seed
// through NewFallbackWithSeed for reproducible results.
func NewFallback() *Fallback {
	return NewFallbackWithSeed(time.Now().UnixNano())
}

func NewFallbackWithSeed(seed int64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a randomized, fully populated analysis.
func (f *Fallback) Generate() OutfitAnalysis {
	f.mu.Lock()
	defer f.mu.Unlock()

	return OutfitAnalysis{
		OverallScore: math.Round((6.5+f.rng.Float64()*3.0)*10) / 10,
		Style:        fallbackStyles[f.rng.Intn(len(fallbackStyles))],
		ColorHarmony: 70 + f.rng.Intn(26),
		Fit:          75 + f.rng.Intn(21),
		Occasion:     cloneStrings(fallbackOccasions[f.rng.Intn(len(fallbackOccasions))]),
		BodyShape:    fallbackBodyShapes[f.rng.Intn(len(fallbackBodyShapes))],
		Fabrics:      cloneStrings(fallbackFabrics[f.rng.Intn(len(fallbackFabrics))]),
		Brands:       cloneStrings(fallbackBrands[f.rng.Intn(len(fallbackBrands))]),
		Sustainability: Sustainability{
			Score:    60 + f.rng.Intn(31),
			Feedback: fallbackSustainabilityFeedbacks[f.rng.Intn(len(fallbackSustainabilityFeedbacks))],
		},
		Recommendations: cloneStrings(fallbackRecommendations[f.rng.Intn(len(fallbackRecommendations))]),
	}
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}
