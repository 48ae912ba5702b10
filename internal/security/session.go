package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionConfig carries the signing material and claim constraints for
// session tokens. All fields are required.
type SessionConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Sessions mints and verifies HS256 session tokens. The subject claim is
// the user id; everything else is standard registered claims.
type Sessions struct {
	cfg SessionConfig
}

func NewSessions(cfg SessionConfig) *Sessions {
	return &Sessions{cfg: cfg}
}

// Mint returns a signed token for userID, valid for the configured TTL.
func (s *Sessions) Mint(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.cfg.Issuer,
		Audience:  jwt.ClaimStrings{s.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the user id it was
// minted for. Any failure collapses to ErrInvalidSession; callers do not
// need to distinguish expiry from tampering.
func (s *Sessions) Verify(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithLeeway(30*time.Second), // small clock skew
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
