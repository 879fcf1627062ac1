package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fashionlens-backend/internal/shared/metrics"
	"fashionlens-backend/internal/shared/storage/object"
	"fashionlens-backend/internal/shared/telemetry"
	"fashionlens-backend/internal/shared/util"
	"fashionlens-backend/internal/vision"
)

const defaultHistoryLimit = 10

// UploadFile is one file received in an upload request.
type UploadFile struct {
	Name string
	Data []byte
}

// Service contains business logic for outfit analyses.
type Service struct {
	Repo              Repo
	Store             object.ObjectStore
	Analyzer          vision.Analyzer
	AllowedExtensions []string
}

// Analyze stores the valid uploaded images, runs the vision analyzer over
// them, and persists the result. Files with unsupported extensions are
// dropped silently; if nothing remains the upload fails with ErrNoValidFiles.
func (s *Service) Analyze(ctx context.Context, userID string, files []UploadFile) (Analysis, error) {
	if userID == "" {
		return Analysis{}, errors.New("userID is required")
	}

	valid := make([]UploadFile, 0, len(files))
	for _, f := range files {
		if f.Name == "" || len(f.Data) == 0 {
			continue
		}
		if !s.extensionAllowed(f.Name) {
			telemetry.Info("analysis.file_skipped", map[string]any{
				"file_name": f.Name,
				"reason":    "extension",
			})
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		metrics.IncUploadRejected()
		return Analysis{}, ErrNoValidFiles
	}

	metrics.IncAnalysisStarted()

	images := make([]AnalysisImage, 0, len(valid))
	payloads := make([][]byte, 0, len(valid))
	for _, f := range valid {
		key, size, mimeType, err := s.Store.Save(ctx, userID, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			return Analysis{}, fmt.Errorf("store image %s: %w", f.Name, err)
		}
		images = append(images, AnalysisImage{
			FileName:   f.Name,
			StorageKey: key,
			URL:        "/uploads/" + key,
			SizeBytes:  size,
			MimeType:   mimeType,
		})
		payloads = append(payloads, f.Data)
	}

	started := time.Now()
	result, usedFallback := s.Analyzer.Analyze(ctx, payloads)
	metrics.ObserveVisionDurationMs(float64(time.Since(started)) / float64(time.Millisecond))
	if usedFallback {
		metrics.IncAnalysisFallback()
	}

	analysis := Analysis{
		ID:        uuid.NewString(),
		UserID:    userID,
		Images:    images,
		Result:    vision.Normalize(result),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":   analysis.ID,
		"user_id":       userID,
		"image_count":   len(images),
		"used_fallback": usedFallback,
		"overall_score": analysis.Result.OverallScore,
	})
	return analysis, nil
}

// Get returns an analysis by ID, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrForbidden
	}
	return analysis, nil
}

// History returns the user's analyses, newest first. skip supports paging
// through older records.
func (s *Service) History(ctx context.Context, userID string, limit, skip int) ([]Analysis, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, skip)
}

func (s *Service) extensionAllowed(name string) bool {
	ext := util.FileExtension(name)
	if ext == "" {
		return false
	}
	for _, allowed := range s.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
