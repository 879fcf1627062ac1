package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/analyses"
	authpkg "fashionlens-backend/internal/auth"
	"fashionlens-backend/internal/dashboard"
	"fashionlens-backend/internal/recommendations"
	sharedauth "fashionlens-backend/internal/shared/auth"
	"fashionlens-backend/internal/shared/config"
	"fashionlens-backend/internal/shared/server"
	"fashionlens-backend/internal/shared/storage/db"
	"fashionlens-backend/internal/shared/storage/object"
	localstore "fashionlens-backend/internal/shared/storage/object/local"
	s3store "fashionlens-backend/internal/shared/storage/object/s3"
	"fashionlens-backend/internal/uploads"
	"fashionlens-backend/internal/users"
	"fashionlens-backend/internal/vision"
	"fashionlens-backend/internal/vision/gemini"
	"fashionlens-backend/internal/wardrobe"
)

// App holds shared dependencies built from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Signer      *sharedauth.Signer
	Revocations sharedauth.RevocationStore

	UsersRepo           users.Repo
	AnalysesRepo        analyses.Repo
	WardrobeRepo        wardrobe.Repo
	RecommendationsRepo recommendations.Repo

	UsersService     *users.Service
	AnalysesService  *analyses.Service
	WardrobeService  *wardrobe.Service
	DashboardService *dashboard.Service
	Analyzer         vision.Analyzer
}

// Build prepares all dependencies and the wired router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	revocations, err := buildRevocations(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using insecure dev secret")
		secret = "dev-insecure-secret"
	}
	signer := sharedauth.NewSigner(secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	app := &App{
		Config:      cfg,
		DB:          sqlDB,
		Store:       store,
		Signer:      signer,
		Revocations: revocations,
	}
	buildServices(app)

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.UploadDir), nil
	}
}

func buildRevocations(ctx context.Context, cfg config.Config) (sharedauth.RevocationStore, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return sharedauth.NewMemoryRevocationStore(), nil
	}
	client, err := sharedauth.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis connect failed; using in-memory revocation store: %v", err)
			return sharedauth.NewMemoryRevocationStore(), nil
		}
		return nil, err
	}
	return sharedauth.NewRedisRevocationStore(client), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
		app.WardrobeRepo = &wardrobe.PGRepo{DB: app.DB}
		app.RecommendationsRepo = &recommendations.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.WardrobeRepo = wardrobe.NewMemoryRepo()
		app.RecommendationsRepo = recommendations.NewMemoryRepo()
	}

	app.Analyzer = gemini.NewClient(app.Config.GeminiAPIKey, app.Config.GeminiModel)

	app.UsersService = &users.Service{Repo: app.UsersRepo}
	app.AnalysesService = &analyses.Service{
		Repo:              app.AnalysesRepo,
		Store:             app.Store,
		Analyzer:          app.Analyzer,
		AllowedExtensions: app.Config.AllowedExtensions,
	}
	app.WardrobeService = &wardrobe.Service{
		Repo:              app.WardrobeRepo,
		Store:             app.Store,
		AllowedExtensions: app.Config.AllowedExtensions,
	}
	app.DashboardService = dashboard.NewService(app.AnalysesRepo, app.WardrobeRepo)

	var google *authpkg.GoogleService
	if app.Config.GoogleClientID != "" && app.Config.GoogleClientSecret != "" {
		google = authpkg.NewGoogleService(
			app.Config.GoogleClientID,
			app.Config.GoogleClientSecret,
			app.Config.GoogleRedirectURL,
			app.Config.UIRedirectURL,
			app.Signer,
			app.UsersService,
		)
	}
	authHandler := &authpkg.Handler{
		Users:       app.UsersService,
		Signer:      app.Signer,
		Revocations: app.Revocations,
		Google:      google,
	}

	engine := recommendations.NewEngine(app.WardrobeRepo)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 app.Config,
		Signer:                 app.Signer,
		Revocations:            app.Revocations,
		AuthHandler:            authHandler,
		AnalysisHandler:        analyses.NewHandler(app.AnalysesService, app.UsersService, app.Config.MaxUploadBytes),
		WardrobeHandler:        wardrobe.NewHandler(app.WardrobeService, app.Config.MaxUploadBytes),
		DashboardHandler:       dashboard.NewHandler(app.DashboardService),
		RecommendationsHandler: recommendations.NewHandler(engine, app.RecommendationsRepo),
		UploadsHandler:         uploads.NewHandler(app.Store),
	})
}
