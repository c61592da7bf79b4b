package domain

import "time"

// TokenPurpose selects which action-token set a token belongs to.
// Verification and reset tokens live in separate tables so a token
// issued for one flow can never authorize the other.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// ActionToken is a single-use, time-limited token authorizing exactly
// one state transition (verify email, reset password). It is deleted
// the moment it is successfully consumed.
type ActionToken struct {
	Token     string
	UserID    string
	Purpose   TokenPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
}
