package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedauth "fashionlens-backend/internal/shared/auth"
	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
	"fashionlens-backend/internal/shared/telemetry"
	"fashionlens-backend/internal/users"
)

// Handler serves registration, login, and session endpoints.
type Handler struct {
	Users       *users.Service
	Signer      *sharedauth.Signer
	Revocations sharedauth.RevocationStore
	Google      *GoogleService
}

// RegisterPublicRoutes attaches endpoints that do not require a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/oauth-login", h.oauthLogin)
	rg.POST("/auth/refresh", h.refresh)
	if h.Google != nil {
		h.Google.RegisterRoutes(rg)
	}
}

// RegisterProtectedRoutes attaches endpoints that require a valid session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.me)
	rg.GET("/auth/session-check", h.sessionCheck)
	rg.POST("/auth/logout", h.logout)
	rg.POST("/auth/logout-all", h.logoutAll)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "conflict", "User already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	pair, err := h.Signer.IssuePair(user.ID, user.Name, user.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue tokens", nil)
		return
	}

	telemetry.Info("auth.registered", map[string]any{"user_id": user.ID})
	respond.JSON(c, http.StatusCreated, gin.H{
		"user":          user.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing email or password", nil)
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid credentials", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	pair, err := h.Signer.IssuePair(user.ID, user.Name, user.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue tokens", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"user":          user.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type oauthLoginRequest struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
}

// oauthLogin accepts a provider profile already verified by the frontend and
// mints a session for it.
func (h *Handler) oauthLogin(c *gin.Context) {
	var req oauthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Name == "" || req.Provider == "" || req.ProviderAccountID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required OAuth fields", nil)
		return
	}

	user, err := h.Users.UpsertGoogle(c.Request.Context(), req.Provider+":"+req.ProviderAccountID, req.Email, req.Name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "User creation failed during OAuth process", nil)
		return
	}

	token, err := h.Signer.IssueAccess(user.ID, user.Name, user.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	}
	if token == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing refresh token", nil)
		return
	}

	claims, err := h.Signer.Verify(token)
	if err != nil || claims.TokenType != sharedauth.TokenTypeRefresh {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	if h.Revocations != nil && claims.ID != "" {
		revoked, err := h.Revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "refresh token revoked", nil)
			return
		}
	}

	access, err := h.Signer.IssueAccess(claims.Subject, claims.Name, claims.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to refresh token", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"access_token": access})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if middleware.IsGuest(c) {
		respond.JSON(c, http.StatusOK, gin.H{
			"user": gin.H{"id": userID, "guest": true},
		})
		return
	}

	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"user": user.Public()})
}

func (h *Handler) sessionCheck(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if middleware.IsGuest(c) {
		respond.JSON(c, http.StatusOK, gin.H{
			"valid": true,
			"user":  gin.H{"id": userID, "guest": true},
		})
		return
	}

	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"valid": true,
		"user":  user.Public(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	jti := middleware.TokenIDFromContext(c)
	if jti != "" && h.Revocations != nil {
		// Keep the revocation entry alive for as long as the token could be replayed.
		if err := h.Revocations.Revoke(c.Request.Context(), jti, h.Signer.AccessTTL()); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to logout", nil)
			return
		}
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// logoutAll revokes the presented token. Per-user session tracking would be
// needed to revoke every device's tokens; until then this matches logout.
func (h *Handler) logoutAll(c *gin.Context) {
	jti := middleware.TokenIDFromContext(c)
	if jti != "" && h.Revocations != nil {
		if err := h.Revocations.Revoke(c.Request.Context(), jti, h.Signer.AccessTTL()); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to logout from all devices", nil)
			return
		}
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Successfully logged out from all devices"})
}
