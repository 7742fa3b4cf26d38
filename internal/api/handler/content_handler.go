package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

type ContentHandler struct {
	contentService ports.ContentService
}

func NewContentHandler(contentService ports.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type createContentRequest struct {
	CourseID string           `json:"courseId" validate:"required"`
	Title    string           `json:"title" validate:"required"`
	Sections []domain.Section `json:"sections"`
}

type updateContentRequest struct {
	Title    *string          `json:"title"`
	Sections []domain.Section `json:"sections"`
}

// Create stores the curriculum document for a course.
//
// @Summary      Create course content
// @Tags         course-content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContentRequest  true  "Curriculum"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/course-content [post]
func (h *ContentHandler) Create(c echo.Context) error {
	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content, err := h.contentService.Create(c.Request().Context(), ports.CreateContentInput{
		CourseID: req.CourseID,
		Title:    req.Title,
		Sections: req.Sections,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "course content created successfully", map[string]any{"content": content})
}

// Get returns a curriculum document by id.
//
// @Summary      Get course content
// @Tags         course-content
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Content id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/course-content/{id} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	content, err := h.contentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"content": content})
}

// GetByCourse returns the curriculum document bound to a course.
//
// @Summary      Get content by course
// @Tags         course-content
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  envelope
// @Failure      404       {object}  envelope
// @Router       /api/course-content/course/{courseId} [get]
func (h *ContentHandler) GetByCourse(c echo.Context) error {
	content, err := h.contentService.GetByCourse(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"content": content})
}

// Update applies a partial update to a curriculum document. A non-nil
// sections list replaces the stored one wholesale.
//
// @Summary      Update course content
// @Tags         course-content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Content id"
// @Param        body  body      updateContentRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/course-content/{id} [put]
func (h *ContentHandler) Update(c echo.Context) error {
	var req updateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	content, err := h.contentService.Update(c.Request().Context(), c.Param("id"), ports.ContentUpdate{
		Title:    req.Title,
		Sections: req.Sections,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "course content updated successfully", map[string]any{"content": content})
}

// Delete removes a curriculum document.
//
// @Summary      Delete course content
// @Tags         course-content
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Content id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/course-content/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.contentService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "course content deleted successfully", nil)
}
