package recommendations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
)

// Handler serves outfit and seasonal recommendation endpoints.
type Handler struct {
	Engine *Engine
	Repo   Repo
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine, repo Repo) *Handler {
	return &Handler{Engine: engine, Repo: repo}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/outfits", h.outfits)
	rg.GET("/recommendations/seasonal", h.seasonal)
	rg.GET("/recommendations/shopping", h.shopping)
	rg.POST("/recommendations/feedback", h.feedback)
}

// outfits generates recommendations and persists them so feedback can refer
// back to a concrete suggestion.
func (h *Handler) outfits(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	count := 3
	if raw := c.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			count = parsed
		}
	}

	recs, err := h.Engine.Outfits(c.Request.Context(), userID, count)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
		return
	}

	saved := make([]Recommendation, 0, len(recs))
	for _, rec := range recs {
		rec.ID = uuid.NewString()
		rec.UserID = userID
		rec.CreatedAt = time.Now().UTC()
		if err := h.Repo.Create(c.Request.Context(), rec); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save recommendations", nil)
			return
		}
		saved = append(saved, rec)
	}

	respond.JSON(c, http.StatusOK, saved)
}

func (h *Handler) seasonal(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	season := c.DefaultQuery("season", "fall")

	rec, err := h.Engine.Seasonal(c.Request.Context(), userID, season)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
		return
	}

	respond.JSON(c, http.StatusOK, []Recommendation{rec})
}

func (h *Handler) shopping(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"message": "Shopping recommendations coming soon"})
}

type feedbackRequest struct {
	RecommendationID string `json:"recommendationId"`
	Liked            *bool  `json:"liked"`
	Comment          string `json:"comment"`
}

func (h *Handler) feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecommendationID == "" || req.Liked == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields: recommendationId and liked are required", nil)
		return
	}

	err := h.Repo.UpdateFeedback(c.Request.Context(), req.RecommendationID, Feedback{
		Liked:   *req.Liked,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save feedback", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"message": "Feedback submitted"})
}
