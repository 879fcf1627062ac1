package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
	"fashionlens-backend/internal/users"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	Users          *users.Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, usersSvc *users.Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Users: usersSvc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/upload", h.upload)
	rg.GET("/analysis/history", h.history)
	rg.GET("/analysis/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// Registered identities must still have a user record; tokens can
	// outlive account deletion.
	if h.Users != nil && !middleware.IsGuest(c) {
		if _, err := h.Users.Get(c.Request.Context(), userID); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify user", nil)
			return
		}
	}

	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No images provided", nil)
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No images provided", nil)
		return
	}

	files := make([]UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		files = append(files, UploadFile{Name: header.Filename, Data: data})
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoValidFiles):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No valid images uploaded", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze outfit", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"id":      analysis.ID,
		"images":  analysis.ImageURLs(),
		"results": analysis.Result,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "Unauthorized", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, analysis)
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	skip := 0
	if raw := c.Query("skip"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			skip = parsed
		}
	}

	items, err := h.Svc.History(c.Request.Context(), userID, limit, skip)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		return
	}
	if items == nil {
		items = []Analysis{}
	}

	respond.JSON(c, http.StatusOK, items)
}
