package repository

import (
	"context"
	"time"

	"github.com/tarjamli/backend/internal/domain"
)

// UserRepository is the credential store. It owns user rows and both
// action-token tables, and is the only place uniqueness and
// token-consumption atomicity are enforced.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SetVerified marks the user verified. Idempotent.
	SetVerified(ctx context.Context, userID string) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	// CreateActionToken stores token for user/purpose with the given
	// expiry, replacing any outstanding tokens of the same purpose.
	CreateActionToken(ctx context.Context, purpose domain.TokenPurpose, userID, token string, expiresAt time.Time) error
	// ConsumeActionToken atomically deletes the token and returns its
	// owner. Expired, unknown, or already-consumed tokens all yield
	// domain.ErrTokenInvalid; of two concurrent consumers exactly one
	// gets the row.
	ConsumeActionToken(ctx context.Context, purpose domain.TokenPurpose, token string) (userID, email string, err error)
	// DeleteExpiredTokens removes action tokens past their expiry from
	// both tables. Storage hygiene only: reads already filter on expiry.
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}
