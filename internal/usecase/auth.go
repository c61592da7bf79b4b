package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tarjamli/backend/internal/domain"
	"github.com/tarjamli/backend/internal/email"
	"github.com/tarjamli/backend/internal/metrics"
	"github.com/tarjamli/backend/internal/repository"
	"github.com/tarjamli/backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6

	defaultVerificationTTL = 24 * time.Hour
	defaultResetTTL        = 1 * time.Hour

	emailDispatchTimeout = 10 * time.Second
)

// dummyHash is compared against when login hits an unknown email, so
// that the unknown-email and wrong-password paths cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tarjamli-dummy-password"), bcrypt.DefaultCost)

// AuthOptions carries the account policy knobs loaded from config.
type AuthOptions struct {
	// RequireVerification gates login on a verified email. When false
	// (the default), accounts are verified at registration.
	RequireVerification bool
	VerificationTTL     time.Duration
	ResetTTL            time.Duration
	// WebBaseURL is the website origin embedded in emailed links.
	WebBaseURL string
}

type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	issuer *token.Issuer
	logger *slog.Logger
	opts   AuthOptions
}

func NewAuthUsecase(users repository.UserRepository, sender email.Sender, issuer *token.Issuer, logger *slog.Logger, opts AuthOptions) *AuthUsecase {
	if opts.VerificationTTL <= 0 {
		opts.VerificationTTL = defaultVerificationTTL
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = defaultResetTTL
	}
	return &AuthUsecase{
		users:  users,
		email:  sender,
		issuer: issuer,
		logger: logger.With("component", "auth_usecase"),
		opts:   opts,
	}
}

// Register creates the account and, when verification gating is on,
// emails a verification link. The email is best-effort: a failed
// dispatch never rolls back the registration.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password string) (*domain.PublicUser, error) {
	emailAddr = normalizeEmail(emailAddr)
	if len(password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, emailAddr, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RegistrationsTotal.Inc()

	if !u.opts.RequireVerification {
		if err := u.users.SetVerified(ctx, user.ID); err != nil {
			u.logger.ErrorContext(ctx, "auto-verify user", "error", err)
		} else {
			user.Verified = true
		}
		pub := user.Public()
		return &pub, nil
	}

	if err := u.issueVerification(ctx, user.ID, user.Email); err != nil {
		u.logger.ErrorContext(ctx, "issue verification token", "error", err)
	}

	pub := user.Public()
	return &pub, nil
}

// Login verifies credentials and returns a session token. Unknown email
// and wrong password are indistinguishable: both cost one bcrypt
// compare and both return ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.PublicUser, error) {
	emailAddr = normalizeEmail(emailAddr)

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if u.opts.RequireVerification && !user.Verified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		return "", nil, domain.ErrVerificationNeeded
	}

	signed, err := u.issuer.IssueSession(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	pub := user.Public()
	return signed, &pub, nil
}

// VerifyEmail consumes a verification token and marks its owner
// verified. Returns the owner's email for display.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, rawToken string) (string, error) {
	userID, emailAddr, err := u.users.ConsumeActionToken(ctx, domain.PurposeEmailVerification, rawToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			metrics.TokensConsumedTotal.WithLabelValues("email_verification", "invalid").Inc()
			return "", domain.ErrTokenInvalid
		}
		return "", fmt.Errorf("consume verification token: %w", err)
	}

	if err := u.users.SetVerified(ctx, userID); err != nil {
		return "", fmt.Errorf("set verified: %w", err)
	}
	metrics.TokensConsumedTotal.WithLabelValues("email_verification", "success").Inc()

	subject, body := email.WelcomeEmail()
	u.dispatchEmail(emailAddr, subject, body)

	return emailAddr, nil
}

// RequestPasswordReset never reveals whether the email is registered.
// If it is, a reset token is stored and a link dispatched.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	raw, err := token.NewActionToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(u.opts.ResetTTL)
	if err := u.users.CreateActionToken(ctx, domain.PurposePasswordReset, user.ID, raw, expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	subject, body := email.PasswordResetEmail(u.opts.WebBaseURL, raw)
	u.dispatchEmail(user.Email, subject, body)
	return nil
}

// ResetPassword consumes a reset token and installs the new password.
// The user is not logged in automatically.
func (u *AuthUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	userID, _, err := u.users.ConsumeActionToken(ctx, domain.PurposePasswordReset, rawToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			metrics.TokensConsumedTotal.WithLabelValues("password_reset", "invalid").Inc()
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	metrics.TokensConsumedTotal.WithLabelValues("password_reset", "success").Inc()
	return nil
}

// ResendVerification issues a fresh verification token. Unlike the
// reset flow this one does reveal account state; the caller already
// claims to own the account.
func (u *AuthUsecase) ResendVerification(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.Verified {
		return domain.ErrAlreadyVerified
	}

	return u.issueVerification(ctx, user.ID, user.Email)
}

// CurrentUser returns the public view for an authenticated session.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}

func (u *AuthUsecase) issueVerification(ctx context.Context, userID, emailAddr string) error {
	raw, err := token.NewActionToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(u.opts.VerificationTTL)
	if err := u.users.CreateActionToken(ctx, domain.PurposeEmailVerification, userID, raw, expiresAt); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	subject, body := email.VerificationEmail(u.opts.WebBaseURL, raw)
	u.dispatchEmail(emailAddr, subject, body)
	return nil
}

// dispatchEmail sends in the background with its own deadline. Delivery
// is best-effort; failures are logged, never surfaced to the caller.
func (u *AuthUsecase) dispatchEmail(to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailDispatchTimeout)
		defer cancel()
		if err := u.email.Send(ctx, to, subject, body); err != nil {
			u.logger.Error("email dispatch", "to", to, "subject", subject, "error", err)
		}
	}()
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
