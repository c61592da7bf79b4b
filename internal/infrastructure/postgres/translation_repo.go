package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tarjamli/backend/internal/domain"
)

type TranslationRepository struct {
	pool *pgxpool.Pool
}

func NewTranslationRepository(pool *pgxpool.Pool) *TranslationRepository {
	return &TranslationRepository{pool: pool}
}

func (r *TranslationRepository) Save(ctx context.Context, userID, sourceText, translatedText string) (*domain.Translation, error) {
	query := `
		INSERT INTO translations (user_id, source_text, translated_text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, source_text, translated_text, created_at`

	var tr domain.Translation
	err := r.pool.QueryRow(ctx, query, userID, sourceText, translatedText).
		Scan(&tr.ID, &tr.UserID, &tr.SourceText, &tr.TranslatedText, &tr.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save translation: %w", err)
	}
	return &tr, nil
}

func (r *TranslationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Translation, error) {
	query := `
		SELECT id, user_id, source_text, translated_text, created_at
		FROM translations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var out []domain.Translation
	for rows.Next() {
		var tr domain.Translation
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.SourceText, &tr.TranslatedText, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
