package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// PrincipalKey is the echo context key under which Auth stores the
// authenticated caller.
const PrincipalKey = "principal"

// Auth validates the bearer JWT and injects the caller into the request
// context. Expired tokens get a distinct message so clients can refresh
// instead of re-authenticating blindly.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			uid, _ := claims["uid"].(string)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
			}
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			name, _ := claims["name"].(string)

			c.Set(PrincipalKey, domain.Principal{
				ID:    uid,
				Email: email,
				Role:  role,
				Name:  name,
			})

			return next(c)
		}
	}
}
