package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the uniform response shape. Success responses carry data (a
// single resource) or results (a count plus list); error responses are built
// by the central error handler.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// respond writes a single-resource success envelope.
func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: message, Data: data})
}

// respondList writes a list success envelope with a results count.
func respondList(c echo.Context, code int, message string, count int, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: message, Results: &count, Data: data})
}
