package analyses

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fashionlens-backend/internal/shared/auth"
	"fashionlens-backend/internal/shared/server/middleware"
	"fashionlens-backend/internal/shared/storage/object/local"
	"fashionlens-backend/internal/users"
	"fashionlens-backend/internal/vision"
)

type stubAnalyzer struct {
	result       vision.OutfitAnalysis
	usedFallback bool
	calls        int
	lastImages   [][]byte
}

func (s *stubAnalyzer) Analyze(ctx context.Context, images [][]byte) (vision.OutfitAnalysis, bool) {
	s.calls++
	s.lastImages = images
	return s.result, s.usedFallback
}

func newTestService(t *testing.T, analyzer vision.Analyzer) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:              repo,
		Store:             local.New(t.TempDir()),
		Analyzer:          analyzer,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"},
	}
	return svc, repo
}

type analysisFixture struct {
	router *gin.Engine
	repo   *MemoryRepo
	users  *users.Service
	signer *auth.Signer
}

func setupAnalysisFixture(t *testing.T, analyzer vision.Analyzer) analysisFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repo := newTestService(t, analyzer)
	usersSvc := &users.Service{Repo: users.NewMemoryRepo()}
	handler := NewHandler(svc, usersSvc, 10<<20)

	router := gin.New()
	signer := auth.NewSigner("test-secret", 0, 0)
	group := router.Group("/api")
	group.Use(middleware.Auth(signer, nil))
	handler.RegisterRoutes(group)
	return analysisFixture{router: router, repo: repo, users: usersSvc, signer: signer}
}

func setupAnalysisRouter(t *testing.T, analyzer vision.Analyzer) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	fx := setupAnalysisFixture(t, analyzer)
	return fx.router, fx.repo
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func multipartBody(t *testing.T, fileNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, "fake image bytes"); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}
