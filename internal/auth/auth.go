// Package auth issues and verifies the signed identity tokens that bind a
// request to a user id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// ErrInvalidToken is returned for every verification failure. The reason
// (bad signature, wrong audience, expiry) is logged but never surfaced, so
// callers cannot distinguish which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// DefaultTTL is the token validity window used when none is configured.
const DefaultTTL = 24 * time.Hour

// Config carries the signing parameters for a TokenService.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// TokenService issues and verifies HMAC-signed identity tokens. It holds no
// persistent state; tokens are purely a function of the secret and the clock.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// New builds a TokenService from the given configuration.
func New(cfg Config) *TokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

type identityClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Issue creates a signed, time-bounded token for the given user id.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := identityClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token's signature, issuer, audience and expiry and
// returns the bound user id. Any failure yields ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	var claims identityClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("token rejected")
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
