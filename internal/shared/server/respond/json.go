package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the payload as the response body with the given status.
// Handlers go through this rather than gin directly so the success path
// stays symmetric with Error.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK is shorthand for a 200 response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
