package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewJWTManager("test-secret-that-is-long-enough!!", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := m.GenerateToken("u1", "subadmin", "r1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "subadmin" || claims.RestaurantID != "r1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTRejects(t *testing.T) {
	m, _ := NewJWTManager("secret-one", time.Hour)
	other, _ := NewJWTManager("secret-two", time.Hour)

	foreign, _ := other.GenerateToken("u1", "admin", "")

	expiredClaims := &Claims{
		UserID: "u1",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret-one"))

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.token"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"none alg", noneToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() error = nil, want rejection")
			}
		})
	}
}

func noneToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1", Role: "admin"})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none token: %v", err)
	}
	return s
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Error("NewJWTManager(\"\") error = nil, want error")
	}
	m, _ := NewJWTManager("s", 0)
	if m.TTL() != DefaultTokenTTL {
		t.Errorf("TTL() = %v, want default %v", m.TTL(), DefaultTokenTTL)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if strings.Contains(hash, "correct horse") {
		t.Fatal("hash contains plaintext")
	}
	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPassword() wrong password error = %v, want ErrPasswordMismatch", err)
	}
	if _, err := HashPassword("123"); err == nil {
		t.Error("HashPassword() short password error = nil")
	}
}

func TestContextClaims(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext() on empty context ok = true")
	}
	ctx := WithClaims(context.Background(), &Claims{UserID: "u1"})
	claims, ok := FromContext(ctx)
	if !ok || claims.UserID != "u1" {
		t.Errorf("FromContext() = %+v, %v", claims, ok)
	}
}
