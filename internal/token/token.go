// Package token issues and verifies the two credential kinds the
// service hands out: stateless HS256 session tokens and random
// single-use action tokens whose lifecycle lives in the store.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tarjamli/backend/internal/domain"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims is the verified content of a session token.
type Claims struct {
	UserID string
	Email  string
}

// Issuer signs and verifies session tokens with a process-wide HMAC
// secret loaded once at startup and never mutated.
type Issuer struct {
	secret     []byte
	sessionTTL time.Duration
}

func NewIssuer(secret []byte, sessionTTL time.Duration) *Issuer {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Issuer{secret: secret, sessionTTL: sessionTTL}
}

// IssueSession returns a signed bearer token for the user. The token is
// self-contained: validity is established by signature and expiry
// alone, with no store lookup, so it cannot be revoked before expiry.
func (i *Issuer) IssueSession(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession validates signature and expiry and returns the embedded
// claims. Any failure — malformed token, wrong key, non-HMAC algorithm,
// expired — collapses to ErrTokenInvalid so callers cannot tell them
// apart.
func (i *Issuer) VerifySession(raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	userID, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	if userID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &Claims{UserID: userID, Email: email}, nil
}

// NewActionToken draws 32 bytes from the CSPRNG and hex-encodes them.
// Not derived from user data; 256 bits makes guessing infeasible.
func NewActionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate action token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
