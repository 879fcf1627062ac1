package wardrobe

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the wardrobe service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches wardrobe routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wardrobe", h.list)
	rg.POST("/wardrobe", h.create)
	rg.GET("/wardrobe/:id", h.get)
	rg.PUT("/wardrobe/:id", h.update)
	rg.DELETE("/wardrobe/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch wardrobe", nil)
		return
	}
	if items == nil {
		items = []Item{}
	}
	respond.JSON(c, http.StatusOK, items)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	input := ItemInput{
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Color:    c.PostForm("color"),
		Season:   c.PostForm("season"),
	}
	if input.Name == "" || input.Category == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	item, err := h.Svc.Create(c.Request.Context(), userID, input, readImageFile(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to add item", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, item)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	item, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeItemError(c, err, "failed to fetch item")
		return
	}
	respond.JSON(c, http.StatusOK, item)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	input := ItemInput{
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Color:    c.PostForm("color"),
		Season:   c.PostForm("season"),
	}

	item, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), input, readImageFile(c))
	if err != nil {
		writeItemError(c, err, "failed to update item")
		return
	}
	respond.JSON(c, http.StatusOK, item)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeItemError(c, err, "failed to delete item")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Item deleted"})
}

func writeItemError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Item not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Unauthorized", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

// readImageFile reads the optional "image" form file, tolerating its absence.
func readImageFile(c *gin.Context) *ImageUpload {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	data, err := readAllHeader(header)
	if err != nil {
		return nil
	}
	return &ImageUpload{Name: header.Filename, Data: data}
}

func readAllHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
