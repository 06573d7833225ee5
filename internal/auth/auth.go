// Package auth verifies admin credentials and issues the JWTs the API
// middleware checks. Verification is behind an interface so the static
// env-backed check can be swapped for a real user store later.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks a username/password pair.
type Verifier interface {
	Verify(username, password string) error
}

// StaticVerifier checks against a single configured admin account. When a
// bcrypt hash is configured it takes precedence over the plain password.
type StaticVerifier struct {
	Username     string
	Password     string
	PasswordHash string
}

// StaticVerifierFromEnv builds the default verifier from ADMIN_USERNAME,
// ADMIN_PASSWORD and ADMIN_PASSWORD_HASH. Defaults are admin/admin.
func StaticVerifierFromEnv() *StaticVerifier {
	v := &StaticVerifier{
		Username:     os.Getenv("ADMIN_USERNAME"),
		Password:     os.Getenv("ADMIN_PASSWORD"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	if v.Username == "" {
		v.Username = "admin"
	}
	if v.Password == "" && v.PasswordHash == "" {
		v.Password = "admin"
	}
	return v
}

// Verify implements Verifier.
func (v *StaticVerifier) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1

	var passOK bool
	if v.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs an HMAC admin token for the given username.
func IssueToken(secret, username string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "Admin",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
