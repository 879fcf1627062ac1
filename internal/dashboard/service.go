package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"fashionlens-backend/internal/analyses"
	"fashionlens-backend/internal/wardrobe"
)

const (
	trendWindow      = 30 * 24 * time.Hour
	styleTrendWindow = 180 * 24 * time.Hour
)

// Metric pairs a headline value with a human-readable trend string.
type Metric struct {
	Value any    `json:"value"`
	Trend string `json:"trend"`
}

// Analytics is the dashboard summary for one user.
type Analytics struct {
	TotalAnalyses         Metric `json:"totalAnalyses"`
	WardrobeItems         Metric `json:"wardrobeItems"`
	RecommendationsViewed Metric `json:"recommendationsViewed"`
	StyleScoreAverage     Metric `json:"styleScoreAverage"`
}

// Activity is a single recent-activity feed entry.
type Activity struct {
	Description string `json:"description"`
	Time        string `json:"time"`
	Type        string `json:"type"`

	timestamp time.Time
}

// TrendPoint is one month on the style-score chart.
type TrendPoint struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// Service computes dashboard aggregates from the analysis and wardrobe stores.
type Service struct {
	Analyses analyses.Repo
	Wardrobe wardrobe.Repo

	// now is swappable in tests.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(analysesRepo analyses.Repo, wardrobeRepo wardrobe.Repo) *Service {
	return &Service{Analyses: analysesRepo, Wardrobe: wardrobeRepo, now: time.Now}
}

// Analytics returns the four headline metrics for the user's dashboard.
// Trends compare the last 30 days against the all-time totals.
func (s *Service) Analytics(ctx context.Context, userID string) (Analytics, error) {
	now := s.now().UTC()
	monthAgo := now.Add(-trendWindow)

	totalAnalyses, err := s.Analyses.CountByUser(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	lastMonthAnalyses, err := s.Analyses.CountByUserSince(ctx, userID, monthAgo)
	if err != nil {
		return Analytics{}, err
	}

	totalItems, err := s.Wardrobe.CountByUser(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	newItems, err := s.Wardrobe.CountByUserSince(ctx, userID, monthAgo)
	if err != nil {
		return Analytics{}, err
	}

	avgScore, err := s.Analyses.AverageScoreByUser(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	avgScore = round1(avgScore)

	lastMonthAvg := avgScore
	if lastMonthAnalyses > 0 {
		lastMonthAvg, err = s.Analyses.AverageScoreByUserSince(ctx, userID, monthAgo)
		if err != nil {
			return Analytics{}, err
		}
	}

	recommendationsViewed := totalAnalyses * 2

	out := Analytics{
		TotalAnalyses: Metric{
			Value: totalAnalyses,
			Trend: percentTrend(lastMonthAnalyses, totalAnalyses),
		},
		WardrobeItems: Metric{
			Value: totalItems,
			Trend: newItemsTrend(newItems),
		},
		RecommendationsViewed: Metric{
			Value: recommendationsViewed,
			Trend: percentTrend(lastMonthAnalyses*2, recommendationsViewed),
		},
		StyleScoreAverage: Metric{
			Value: scoreValue(avgScore),
			Trend: scoreTrend(avgScore, lastMonthAvg),
		},
	}
	return out, nil
}

// RecentActivity merges the user's newest analyses and wardrobe additions
// into a single feed, newest first, capped at five entries.
func (s *Service) RecentActivity(ctx context.Context, userID string) ([]Activity, error) {
	now := s.now().UTC()

	recentAnalyses, err := s.Analyses.ListByUser(ctx, userID, 3, 0)
	if err != nil {
		return nil, err
	}
	items, err := s.Wardrobe.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) > 2 {
		items = items[:2]
	}

	activities := make([]Activity, 0, len(recentAnalyses)+len(items))
	for _, a := range recentAnalyses {
		activities = append(activities, Activity{
			Description: fmt.Sprintf("Outfit analysis completed - Score: %.1f/10", a.Result.OverallScore),
			Time:        relativeTime(now, a.CreatedAt),
			Type:        "analysis",
			timestamp:   a.CreatedAt,
		})
	}
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Unnamed item"
		}
		activities = append(activities, Activity{
			Description: fmt.Sprintf("New item '%s' added to wardrobe", name),
			Time:        relativeTime(now, item.CreatedAt),
			Type:        "wardrobe",
			timestamp:   item.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].timestamp.After(activities[j].timestamp)
	})
	if len(activities) > 5 {
		activities = activities[:5]
	}
	return activities, nil
}

// StyleTrends returns the per-month average score over the last six months,
// shaped for the dashboard chart.
func (s *Service) StyleTrends(ctx context.Context, userID string) ([]TrendPoint, error) {
	since := s.now().UTC().Add(-styleTrendWindow)
	points, err := s.Analyses.ScoreTrend(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	chart := make([]TrendPoint, 0, len(points))
	for _, p := range points {
		chart = append(chart, TrendPoint{
			Name:  p.Month.Format("Jan"),
			Score: round1(p.AvgScore),
			Count: p.Count,
		})
	}
	return chart, nil
}

func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	if days := int(d / (24 * time.Hour)); days > 0 {
		return fmt.Sprintf("%d day%s ago", days, pluralSuffix(days))
	}
	if hours := int(d / time.Hour); hours > 0 {
		return fmt.Sprintf("%d hour%s ago", hours, pluralSuffix(hours))
	}
	minutes := int(d / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d minute%s ago", minutes, pluralSuffix(minutes))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percentTrend(recent, total int) string {
	if total <= 0 {
		return "0%"
	}
	pct := round1(float64(recent) / float64(total) * 100)
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func newItemsTrend(newItems int) string {
	if newItems > 0 {
		return fmt.Sprintf("+%d new", newItems)
	}
	return "No new items"
}

func scoreValue(avg float64) string {
	if avg <= 0 {
		return "No data"
	}
	return fmt.Sprintf("%.1f/10", avg)
}

func scoreTrend(avg, lastMonthAvg float64) string {
	if avg <= 0 {
		return "0"
	}
	diff := round1(lastMonthAvg - avg)
	if diff > 0 {
		return fmt.Sprintf("+%.1f", diff)
	}
	return fmt.Sprintf("%.1f", diff)
}
