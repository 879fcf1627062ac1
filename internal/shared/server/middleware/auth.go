package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/auth"
	"fashionlens-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// Auth validates bearer JWTs or guest headers and stores identity in context.
// Revoked tokens are rejected even when otherwise valid.
func Auth(signer *auth.Signer, revocations auth.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			if claims.TokenType == auth.TokenTypeRefresh {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "refresh token not accepted here", nil)
				return
			}
			if revocations != nil && claims.ID != "" {
				revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
				if err != nil || revoked {
					respond.Error(c, http.StatusUnauthorized, "unauthorized", "token revoked", nil)
					return
				}
			}

			c.Set(userIDKey, claims.Subject)
			if claims.Email != "" {
				c.Set(userEmailKey, claims.Email)
			}
			if claims.Name != "" {
				c.Set(userNameKey, claims.Name)
			}
			c.Set("tokenId", claims.ID)
			c.Set("isGuest", false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// TokenIDFromContext fetches the token's jti, used by logout to revoke it.
func TokenIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get("tokenId")
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// IsGuest reports whether the request authenticated via the guest header.
func IsGuest(c *gin.Context) bool {
	val, ok := c.Get("isGuest")
	if !ok {
		return false
	}
	guest, _ := val.(bool)
	return guest
}
