package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/analyses"
	authpkg "fashionlens-backend/internal/auth"
	"fashionlens-backend/internal/dashboard"
	"fashionlens-backend/internal/recommendations"
	sharedauth "fashionlens-backend/internal/shared/auth"
	"fashionlens-backend/internal/shared/config"
	"fashionlens-backend/internal/shared/metrics"
	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/server/respond"
	"fashionlens-backend/internal/uploads"
	"fashionlens-backend/internal/wardrobe"
)

// RouterDeps carries the handlers and auth primitives the router wires up.
type RouterDeps struct {
	Config config.Config

	Signer      *sharedauth.Signer
	Revocations sharedauth.RevocationStore

	AuthHandler            *authpkg.Handler
	AnalysisHandler        *analyses.Handler
	WardrobeHandler        *wardrobe.Handler
	DashboardHandler       *dashboard.Handler
	RecommendationsHandler *recommendations.Handler
	UploadsHandler         *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.UploadsHandler != nil {
		deps.UploadsHandler.RegisterRoutes(r.Group(""))
	}
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	protected.Use(
		middleware.Auth(deps.Signer, deps.Revocations),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"analysis": {Rate: 0.5, Burst: 5},
				"default":  {Rate: 10, Burst: 30},
			},
			DefaultGroup: "default",
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/analysis/upload" {
					return "analysis"
				}
				return ""
			},
		}),
	)
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtectedRoutes(protected)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(protected)
	}
	if deps.WardrobeHandler != nil {
		deps.WardrobeHandler.RegisterRoutes(protected)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(protected)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(protected)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
