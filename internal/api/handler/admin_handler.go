package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats returns the dashboard headline figures.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/admin/dashboard/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"stats": stats})
}

// Activities returns the dashboard recency feeds.
//
// @Summary      Recent activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Feed size (default 10)"
// @Success      200    {object}  envelope
// @Failure      403    {object}  envelope
// @Router       /api/admin/dashboard/activities [get]
func (h *AdminHandler) Activities(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	activities, err := h.adminService.RecentActivities(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"activities": activities})
}
