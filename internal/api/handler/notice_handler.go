package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/ports"
)

type NoticeHandler struct {
	noticeService ports.NoticeService
}

func NewNoticeHandler(noticeService ports.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

type createNoticeRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=info warning success error"`
	Priority *int   `json:"priority"`
	IsActive *bool  `json:"isActive"`
}

type updateNoticeRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Type     *string `json:"type" validate:"omitempty,oneof=info warning success error"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

// ListPublic returns active notices for the public board.
//
// @Summary      List active notices
// @Tags         notices
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /api/notices [get]
func (h *NoticeHandler) ListPublic(c echo.Context) error {
	notices, err := h.noticeService.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, "", len(notices), map[string]any{"notices": notices})
}

// ListAll returns every notice for the admin panel.
//
// @Summary      List all notices
// @Tags         notices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/notices/admin/all [get]
func (h *NoticeHandler) ListAll(c echo.Context) error {
	notices, err := h.noticeService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, "", len(notices), map[string]any{"notices": notices})
}

// Get returns a single notice by id.
//
// @Summary      Get a notice
// @Tags         notices
// @Produce      json
// @Param        id   path      string  true  "Notice id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/notices/{id} [get]
func (h *NoticeHandler) Get(c echo.Context) error {
	notice, err := h.noticeService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"notice": notice})
}

// Create posts a new notice attributed to the caller.
//
// @Summary      Create a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoticeRequest  true  "Notice details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/notices [post]
func (h *NoticeHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createNoticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notice, err := h.noticeService.Create(c.Request().Context(), principal, ports.CreateNoticeInput{
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		Priority: req.Priority,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "notice created successfully", map[string]any{"notice": notice})
}

// Update applies a partial update and stamps the caller as last editor.
//
// @Summary      Update a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Notice id"
// @Param        body  body      updateNoticeRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/notices/{id} [put]
func (h *NoticeHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notice, err := h.noticeService.Update(c.Request().Context(), principal, c.Param("id"), ports.NoticeUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		Priority: req.Priority,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "notice updated successfully", map[string]any{"notice": notice})
}

// Delete removes a notice.
//
// @Summary      Delete a notice
// @Tags         notices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notice id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/notices/{id} [delete]
func (h *NoticeHandler) Delete(c echo.Context) error {
	if err := h.noticeService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "notice deleted successfully", nil)
}
