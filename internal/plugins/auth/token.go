package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT payload for a session token: the username as
// subject, plus the role and numeric user id so protected handlers never
// have to trust client-supplied identifiers.
type SessionClaims struct {
	Role string `json:"role"`
	UID  int64  `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens. The same secret is used
// on both sides, so a token is verifiable entirely from its own signature
// and claims -- no server-side state is consulted.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given HS256 secret and
// validity window.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue builds a signed token for the given user and returns it together
// with its expiry timestamp.
func (i *TokenIssuer) Issue(user *User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(i.ttl)

	claims := SessionClaims{
		Role: user.Role,
		UID:  user.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expiry, nil
}

// Parse verifies a token's signature and expiry and returns its claims.
// Any failure (bad signature, expired, malformed, wrong algorithm) comes
// back as an error; the caller only branches on valid vs. not.
func (i *TokenIssuer) Parse(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{},
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
