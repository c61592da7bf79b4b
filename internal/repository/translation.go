package repository

import (
	"context"

	"github.com/tarjamli/backend/internal/domain"
)

type TranslationRepository interface {
	Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error)
	// ListByUser returns the user's most recent translations, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Translation, error)
}
