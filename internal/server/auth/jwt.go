// Package auth implements the credential primitives of the server: bcrypt
// password hashing and HS256 JWT issuance/validation.
package auth

import (
	"time"

	"github.com/avoronin/docvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a signed HS256 token whose subject is the username and
// whose expiry is now + validityDuration.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies the token's signature, algorithm, and expiry
// and returns the embedded subject. Every verification failure (tampered
// signature, wrong algorithm, malformed structure, past expiry, empty
// subject) collapses to common.ErrorInvalidToken so callers cannot tell
// the causes apart.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.Subject, nil
}
