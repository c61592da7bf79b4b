package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tarjamli/backend/internal/domain"
	"github.com/tarjamli/backend/internal/transport/http/handler"
)

type fakeTranslationService struct {
	save func(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error)
	list func(ctx context.Context, userID string, limit int) ([]domain.Translation, error)
}

func (f *fakeTranslationService) Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error) {
	return f.save(ctx, userID, sourceText, translatedText)
}

func (f *fakeTranslationService) List(ctx context.Context, userID string, limit int) ([]domain.Translation, error) {
	return f.list(ctx, userID, limit)
}

func newTranslationEngine(svc *fakeTranslationService) *gin.Engine {
	h := handler.NewTranslationHandler(svc, slog.Default())
	r := gin.New()
	// stand-in for the auth middleware
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	r.POST("/translations", h.Save)
	r.GET("/translations", h.List)
	return r
}

func TestSaveTranslation_Created(t *testing.T) {
	svc := &fakeTranslationService{
		save: func(_ context.Context, userID, src, dst string) (*domain.Translation, error) {
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			return &domain.Translation{ID: "t1", SourceText: src, TranslatedText: dst}, nil
		},
	}

	w := doJSON(t, newTranslationEngine(svc), http.MethodPost, "/translations",
		`{"sourceText":"hello","translatedText":"salam"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}

func TestSaveTranslation_MissingFields_400(t *testing.T) {
	svc := &fakeTranslationService{
		save: func(_ context.Context, _, _, _ string) (*domain.Translation, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	}

	w := doJSON(t, newTranslationEngine(svc), http.MethodPost, "/translations", `{"sourceText":"hello"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListTranslations_PassesLimit(t *testing.T) {
	var gotLimit int
	svc := &fakeTranslationService{
		list: func(_ context.Context, _ string, limit int) ([]domain.Translation, error) {
			gotLimit = limit
			return []domain.Translation{{ID: "t1"}}, nil
		},
	}

	w := doJSON(t, newTranslationEngine(svc), http.MethodGet, "/translations?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotLimit != 5 {
		t.Errorf("limit = %d, want 5", gotLimit)
	}
}

func TestListTranslations_EmptyHistoryIsArray(t *testing.T) {
	svc := &fakeTranslationService{
		list: func(_ context.Context, _ string, _ int) ([]domain.Translation, error) {
			return nil, nil
		},
	}

	w := doJSON(t, newTranslationEngine(svc), http.MethodGet, "/translations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if _, ok := body["translations"].([]any); !ok {
		t.Errorf("translations should be an array, got %T", body["translations"])
	}
}
