package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tarjamli/backend/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, verified, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, email, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, verified, created_at, updated_at
		FROM users
		WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, verified, created_at, updated_at
		FROM users
		WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) SetVerified(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET verified = TRUE, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CreateActionToken inserts the token and, in the same transaction,
// drops any outstanding tokens the user already had for this purpose so
// only the most recently issued one can succeed.
func (r *UserRepository) CreateActionToken(ctx context.Context, purpose domain.TokenPurpose, userID, token string, expiresAt time.Time) error {
	table, err := tokenTable(purpose)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM `+table+` WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("invalidate prior tokens: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO `+table+` (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	); err != nil {
		return fmt.Errorf("store action token: %w", err)
	}

	return tx.Commit(ctx)
}

// ConsumeActionToken deletes the token and returns its owner in one
// statement. The row lock taken by DELETE serializes concurrent
// consumers: the loser sees no row and gets ErrTokenInvalid. Expired
// tokens are filtered here rather than swept, so a stale row behaves
// exactly like a missing one.
func (r *UserRepository) ConsumeActionToken(ctx context.Context, purpose domain.TokenPurpose, token string) (string, string, error) {
	table, err := tokenTable(purpose)
	if err != nil {
		return "", "", err
	}

	query := `
		DELETE FROM ` + table + ` t
		USING users u
		WHERE t.token = $1
		  AND t.expires_at > NOW()
		  AND u.id = t.user_id
		RETURNING t.user_id, u.email`

	var userID, email string
	if err := r.pool.QueryRow(ctx, query, token).Scan(&userID, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", domain.ErrTokenInvalid
		}
		return "", "", fmt.Errorf("consume action token: %w", err)
	}
	return userID, email, nil
}

func (r *UserRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	var total int64
	for _, table := range []string{"verification_tokens", "password_reset_tokens"} {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM `+table+` WHERE expires_at <= NOW()`,
		)
		if err != nil {
			return total, fmt.Errorf("sweep %s: %w", table, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func tokenTable(purpose domain.TokenPurpose) (string, error) {
	switch purpose {
	case domain.PurposeEmailVerification:
		return "verification_tokens", nil
	case domain.PurposePasswordReset:
		return "password_reset_tokens", nil
	default:
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
