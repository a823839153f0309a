// ABOUTME: JWT issuance and verification for authenticating HTTP requests
// ABOUTME: Uses HS256 signing with a configurable secret and lifetime

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors, in the order Verify detects them
var (
	ErrMissingToken  = errors.New("no token provided")
	ErrNotConfigured = errors.New("signing key not configured")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims is the identity data embedded in a signed token. Permissions is
// optional; tokens issued at login normally omit it and the role's
// permission tables apply instead.
type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Codec encodes and decodes signed bearer tokens. A Codec is immutable
// after construction and safe for concurrent use. It performs no I/O.
type Codec struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	audience string
}

// NewCodec creates a token codec. An empty secret is allowed here so the
// misconfiguration surfaces as ErrNotConfigured at issue/verify time and
// maps to a 5xx response rather than crashing startup.
func NewCodec(secret []byte, lifetime time.Duration, issuer, audience string) *Codec {
	return &Codec{
		secret:   secret,
		lifetime: lifetime,
		issuer:   issuer,
		audience: audience,
	}
}

// Issue creates a signed token for the given identity. Expiry is the
// configured lifetime from now; issued-at and not-before are set to now.
func (c *Codec) Issue(userID, username, role string, permissions []string) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	claims := &Claims{
		Username:    username,
		Role:        role,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates a token string and returns its claims. Failures are
// detected in priority order: missing token, missing server-side secret,
// expired token (from the embedded exp claim), then any signature or
// structural problem as ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	if len(c.secret) == 0 {
		return nil, ErrNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only HS256-family signatures are accepted
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer), jwt.WithAudience(c.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
