package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, secret, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(secret)
	err := mw(func(c echo.Context) error { return nil })(c)
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"uid":   "user-1",
		"email": "alice@example.com",
		"role":  domain.RoleStudent,
		"name":  "Alice",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	c, err := runAuth(t, "secret", "Bearer "+signed)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	principal, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok {
		t.Fatalf("principal not set")
	}
	if principal.ID != "user-1" || principal.Role != domain.RoleStudent || principal.Email != "alice@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"uid": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := runAuth(t, "secret", "Bearer "+signed)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	// Expired tokens must be distinguishable from malformed ones.
	if msg, _ := he.Message.(string); !strings.Contains(msg, "expired") {
		t.Fatalf("expected expired message, got %q", he.Message)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	signed := signToken(t, "other", jwt.MapClaims{
		"uid": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := runAuth(t, "secret", "Bearer "+signed)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if msg, _ := he.Message.(string); msg != "invalid token" {
		t.Fatalf("expected invalid token message, got %q", he.Message)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, "secret", "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := runAuth(t, "secret", "Token abc")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MissingUID(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := runAuth(t, "secret", "Bearer "+signed)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
