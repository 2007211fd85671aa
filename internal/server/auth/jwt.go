package auth

import (
	"crypto/rsa"
	"time"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Namespace is the shared audience/issuer value. Issuer and verifier use
// the same constant so the two cannot drift apart through configuration.
const Namespace = "authgate"

// DefaultTokenValidity is the fixed token lifetime. Callers needing a
// different lifetime pass it explicitly to NewClaims.
const DefaultTokenValidity = time.Hour

// Claims is the full token payload: the caller's identity and group IDs
// plus the registered claims (iat, exp, aud, iss).
type Claims struct {
	UserID int64   `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Groups []int64 `json:"groups"`
	jwt.RegisteredClaims
}

// NewClaims builds the claims for a freshly authenticated user.
// exp is iat + validity; aud and iss are the namespace constant.
func NewClaims(userID int64, email, name string, groups []int64, now time.Time, validity time.Duration) *Claims {
	if groups == nil {
		groups = []int64{}
	}
	return &Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Groups: groups,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			Audience:  jwt.ClaimStrings{Namespace},
			Issuer:    Namespace,
		},
	}
}

// GenerateToken signs the claims with RSA-SHA256.
func GenerateToken(claims *Claims, key *rsa.PrivateKey) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(key)
}

// ParseToken verifies the token against the public key and returns its
// claims. Only RS256 is accepted; expiration is required; audience and
// issuer must match the namespace. Every failure collapses to
// common.ErrInvalidToken so callers cannot distinguish "expired" from
// "tampered".
func ParseToken(tokenString string, key *rsa.PublicKey) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(Namespace),
		jwt.WithIssuer(Namespace),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
