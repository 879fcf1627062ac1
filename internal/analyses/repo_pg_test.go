package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fashionlens-backend/internal/vision"
)

func TestPGRepoCreateMarshalsJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:     "analysis-1",
		UserID: "user-1",
		Images: []AnalysisImage{{FileName: "look.png", StorageKey: "abc/def_look.png", URL: "/uploads/abc/def_look.png"}},
		Result: vision.OutfitAnalysis{
			OverallScore: 8.1,
			Style:        "Casual",
		},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			sqlmock.AnyArg(), // images
			sqlmock.AnyArg(), // result
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, images, result, created_at").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserDecodesResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	result := vision.OutfitAnalysis{OverallScore: 7.7, Style: "Formal"}
	resultPayload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	imagesPayload, err := json.Marshal([]AnalysisImage{{FileName: "a.png"}})
	if err != nil {
		t.Fatalf("marshal images: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "images", "result", "created_at"}).
		AddRow("a-1", "user-1", imagesPayload, resultPayload, time.Now().UTC())

	mock.ExpectQuery("SELECT id, user_id, images, result, created_at").
		WithArgs("user-1", 10, 0).
		WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Result.Style != "Formal" {
		t.Fatalf("unexpected result: %+v", items[0].Result)
	}
	if items[0].Result.Occasion == nil {
		t.Fatal("expected normalized non-nil slice")
	}
}
