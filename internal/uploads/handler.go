package uploads

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/storage/object"
)

// Handler serves stored images back over HTTP.
type Handler struct {
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches the upload-serving route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/*key", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.Status(http.StatusNotFound)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer rc.Close()

	// Sniff the content type from the first chunk, then stream the rest.
	head := make([]byte, 512)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		c.Status(http.StatusInternalServerError)
		return
	}
	head = head[:n]

	c.Header("Content-Type", http.DetectContentType(head))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(head); err != nil {
		return
	}
	_, _ = io.Copy(c.Writer, rc)
}
