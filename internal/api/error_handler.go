package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail
// carries the underlying cause and is populated only outside production.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"status":"error", "message": ...}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		resp := errorResponse{Status: "error", Message: msg}
		if code == http.StatusInternalServerError && !production {
			resp.Detail = err.Error()
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, validation 400s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. Business-rule
	// denials on keys are forbidden, not bad-request: the payload was fine,
	// the key just may not be used.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrKeyInactive):
		return http.StatusForbidden, domain.ErrKeyInactive.Error()
	case errors.Is(err, domain.ErrKeyExpired):
		return http.StatusForbidden, domain.ErrKeyExpired.Error()
	case errors.Is(err, domain.ErrKeyUsageExceeded):
		return http.StatusForbidden, domain.ErrKeyUsageExceeded.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound, domain.ErrCourseNotFound.Error()
	case errors.Is(err, domain.ErrKeyNotFound):
		return http.StatusNotFound, domain.ErrKeyNotFound.Error()
	case errors.Is(err, domain.ErrNoticeNotFound):
		return http.StatusNotFound, domain.ErrNoticeNotFound.Error()
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, domain.ErrContentNotFound.Error()
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, domain.ErrEmailExists.Error()
	case errors.Is(err, domain.ErrKeyExists):
		return http.StatusConflict, domain.ErrKeyExists.Error()
	case errors.Is(err, domain.ErrCourseInCart):
		return http.StatusBadRequest, domain.ErrCourseInCart.Error()
	case errors.Is(err, domain.ErrSelfDeletion):
		return http.StatusBadRequest, domain.ErrSelfDeletion.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
