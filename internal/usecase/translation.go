package usecase

import (
	"context"
	"fmt"

	"github.com/tarjamli/backend/internal/domain"
	"github.com/tarjamli/backend/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// TranslationUsecase persists and lists a user's saved translations.
type TranslationUsecase struct {
	translations repository.TranslationRepository
}

func NewTranslationUsecase(translations repository.TranslationRepository) *TranslationUsecase {
	return &TranslationUsecase{translations: translations}
}

func (u *TranslationUsecase) Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error) {
	tr, err := u.translations.Save(ctx, userID, sourceText, translatedText)
	if err != nil {
		return nil, fmt.Errorf("save translation: %w", err)
	}
	return tr, nil
}

func (u *TranslationUsecase) List(ctx context.Context, userID string, limit int) ([]domain.Translation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	out, err := u.translations.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return out, nil
}
