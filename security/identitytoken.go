package security

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the resolved caller: who they are and what they may do.
// Every component downstream of the gateway trusts this pair and never
// re-derives it.
type Identity struct {
	UserID   string `json:"sub"`
	FullName string `json:"name"`
	Role     string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken mints an HS256 token for an identity. Token issuance is
// owned by the identity provider in production; this exists for the dev CLI
// and tests.
func CreateIdentityToken(identity Identity, base64Secret string, expiresIn time.Duration) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dayflow",
			Audience:  []string{"dayflow.app"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}

// ParseIdentityToken validates the signature and expiry and returns the
// embedded identity.
func ParseIdentityToken(tokenStr, base64Secret string) (Identity, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return Identity{}, err
	}

	var claims IdentityClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretBytes, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}
	if claims.UserID == "" {
		return Identity{}, fmt.Errorf("token has no subject")
	}

	return claims.Identity, nil
}
