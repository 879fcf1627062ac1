package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the dashboard service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/analytics", h.analytics)
	rg.GET("/dashboard/recent-activity", h.recentActivity)
	rg.GET("/dashboard/style-trends", h.styleTrends)
}

func (h *Handler) analytics(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	data, err := h.Svc.Analytics(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to get dashboard analytics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, data)
}

func (h *Handler) recentActivity(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	activities, err := h.Svc.RecentActivity(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to get recent activity", nil)
		return
	}
	if activities == nil {
		activities = []Activity{}
	}
	respond.JSON(c, http.StatusOK, activities)
}

func (h *Handler) styleTrends(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	chart, err := h.Svc.StyleTrends(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to get style trends", nil)
		return
	}
	if chart == nil {
		chart = []TrendPoint{}
	}
	respond.JSON(c, http.StatusOK, chart)
}
