package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/api/middleware"
	"github.com/nextgen-lms/backend/internal/core/domain"
)

// ctxPrincipal extracts the authenticated caller injected by the Auth
// middleware. An empty id means the middleware did not run on this route;
// reject rather than proceed with an anonymous identity.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || principal.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
