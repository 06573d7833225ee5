package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifierPlainPassword(t *testing.T) {
	v := &StaticVerifier{Username: "admin", Password: "admin"}

	if err := v.Verify("admin", "admin"); err != nil {
		t.Fatalf("expected valid credentials to pass, got %v", err)
	}
	if err := v.Verify("admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if err := v.Verify("root", "admin"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong username, got %v", err)
	}
}

func TestStaticVerifierBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	v := &StaticVerifier{Username: "admin", PasswordHash: string(hash)}

	if err := v.Verify("admin", "s3cret"); err != nil {
		t.Fatalf("expected hashed credentials to pass, got %v", err)
	}
	if err := v.Verify("admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestStaticVerifierHashTakesPrecedence(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	v := &StaticVerifier{Username: "admin", Password: "plain", PasswordHash: string(hash)}

	if err := v.Verify("admin", "plain"); err != ErrInvalidCredentials {
		t.Fatalf("plain password must not pass when a hash is configured, got %v", err)
	}
	if err := v.Verify("admin", "hashed"); err != nil {
		t.Fatalf("expected hash to verify, got %v", err)
	}
}

func TestIssueToken(t *testing.T) {
	signed, err := IssueToken("test-secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not validate: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["sub"] != "admin" {
		t.Errorf("sub = %v, want admin", claims["sub"])
	}
	if claims["role"] != "Admin" {
		t.Errorf("role = %v, want Admin", claims["role"])
	}
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	if _, err := IssueToken("", "admin", time.Hour); err == nil {
		t.Fatal("expected error when secret is empty")
	}
}
