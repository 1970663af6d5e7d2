// Package token issues and verifies the stateless session tokens that carry an
// authenticated subject between requests. Tokens are compact HS256-signed JWTs
// holding the subject's user id and an absolute expiry; nothing is persisted
// server-side, so validity is purely a function of signature and clock.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usguri/almoxarifado-go/apperror"
)

// DefaultLifetime is how long an issued token stays valid.
const DefaultLifetime = 14 * 24 * time.Hour // 2 weeks

// Claims is the signed token payload: the subject's user id plus the
// registered claims (expiry, issued-at).
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a symmetric secret shared by
// the whole process. The secret and lifetime are immutable after construction.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
}

// NewIssuer creates an Issuer. A non-positive lifetime falls back to
// DefaultLifetime.
func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Issuer{secret: []byte(secret), lifetime: lifetime}
}

// Issue signs a token for the given user id expiring lifetime from now.
func (i *Issuer) Issue(userID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Every failure mode (malformed
// structure, wrong algorithm, bad signature, expiry) collapses into the same
// AuthError so responses never reveal why verification failed.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid || claims.UserID == 0 {
		return nil, apperror.NewAuthError("authentication required", err)
	}
	return claims, nil
}
