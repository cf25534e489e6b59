// Package auth provides stateless bearer-token issuance/verification and
// the middleware that turns a token into an authenticated user.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/savansr/task-management-app/internal/errs"
)

// DefaultTokenTTL is used when the configured TTL is not positive.
const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenService issues and verifies signed HS256 tokens. Tokens are
// stateless: nothing is persisted, so a token cannot be revoked before
// its expiry. That limitation is accepted for this system's scope.
type TokenService struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenService constructs a TokenService with the given signing key and TTL.
func NewTokenService(signKey []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{signKey: signKey, ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the given user ID.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
// It does not consult the user store: a valid token does not guarantee
// the user still exists.
func (s *TokenService) Verify(raw string) (int64, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return 0, errs.ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrInvalidToken
	}
	return id, nil
}
