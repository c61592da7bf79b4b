package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tarjamli/backend/internal/domain"
	"github.com/tarjamli/backend/internal/usecase"
)

type fakeTranslationRepo struct {
	save       func(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error)
	listByUser func(ctx context.Context, userID string, limit int) ([]domain.Translation, error)
}

func (r *fakeTranslationRepo) Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error) {
	return r.save(ctx, userID, sourceText, translatedText)
}

func (r *fakeTranslationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Translation, error) {
	return r.listByUser(ctx, userID, limit)
}

func TestTranslationSave_Passthrough(t *testing.T) {
	repo := &fakeTranslationRepo{
		save: func(_ context.Context, userID, src, dst string) (*domain.Translation, error) {
			return &domain.Translation{ID: "t1", UserID: userID, SourceText: src, TranslatedText: dst}, nil
		},
	}

	tr, err := usecase.NewTranslationUsecase(repo).Save(context.Background(), "u1", "hello", "salam")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if tr.ID != "t1" || tr.TranslatedText != "salam" {
		t.Errorf("unexpected translation %+v", tr)
	}
}

func TestTranslationList_ClampsLimit(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero defaults", 0, 50},
		{"negative defaults", -3, 50},
		{"in range kept", 10, 10},
		{"over max clamped", 10000, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit int
			repo := &fakeTranslationRepo{
				listByUser: func(_ context.Context, _ string, limit int) ([]domain.Translation, error) {
					gotLimit = limit
					return nil, nil
				},
			}

			if _, err := usecase.NewTranslationUsecase(repo).List(context.Background(), "u1", tc.in); err != nil {
				t.Fatalf("list: %v", err)
			}
			if gotLimit != tc.want {
				t.Errorf("limit = %d, want %d", gotLimit, tc.want)
			}
		})
	}
}

func TestTranslationList_RepoError_Propagates(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeTranslationRepo{
		listByUser: func(_ context.Context, _ string, _ int) ([]domain.Translation, error) {
			return nil, repoErr
		},
	}

	if _, err := usecase.NewTranslationUsecase(repo).List(context.Background(), "u1", 5); !errors.Is(err, repoErr) {
		t.Errorf("want wrapped repoErr, got %v", err)
	}
}
