package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/ports"
)

type CourseHandler struct {
	courseService ports.CourseService
	uploadDir     string
}

func NewCourseHandler(courseService ports.CourseService, uploadDir string) *CourseHandler {
	return &CourseHandler{courseService: courseService, uploadDir: uploadDir}
}

type createCourseRequest struct {
	Title       string   `json:"title" form:"title" validate:"required"`
	Description string   `json:"description" form:"description" validate:"required"`
	Instructor  string   `json:"instructor" form:"instructor" validate:"required"`
	Duration    string   `json:"duration" form:"duration"`
	Level       string   `json:"level" form:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced 'Beginner to Advanced'"`
	Price       float64  `json:"price" form:"price" validate:"gte=0"`
	Rating      *float64 `json:"rating" form:"rating" validate:"omitempty,gte=0,lte=5"`
	Students    *int     `json:"students" form:"students" validate:"omitempty,gte=0"`
	Skills      []string `json:"skills" form:"skills"`
	Curriculum  []string `json:"curriculum" form:"curriculum"`
}

type updateCourseRequest struct {
	Title       *string  `json:"title" form:"title"`
	Description *string  `json:"description" form:"description"`
	Instructor  *string  `json:"instructor" form:"instructor"`
	Duration    *string  `json:"duration" form:"duration"`
	Level       *string  `json:"level" form:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced 'Beginner to Advanced'"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Rating      *float64 `json:"rating" form:"rating" validate:"omitempty,gte=0,lte=5"`
	Students    *int     `json:"students" form:"students" validate:"omitempty,gte=0"`
	Skills      []string `json:"skills" form:"skills"`
	Curriculum  []string `json:"curriculum" form:"curriculum"`
	IsActive    *bool    `json:"isActive" form:"isActive"`
}

// List returns catalog entries, optionally filtered.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        level       query     string  false  "Filter by level"
// @Param        instructor  query     string  false  "Filter by instructor"
// @Param        search      query     string  false  "Substring match on title, description and instructor"
// @Success      200         {object}  envelope
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context(), ports.ListCoursesFilter{
		Level:      c.QueryParam("level"),
		Instructor: c.QueryParam("instructor"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, "", len(courses), map[string]any{"courses": courses})
}

// Get returns a single course by id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courseService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"course": course})
}

// Create adds a catalog entry. Accepts JSON or multipart with an optional
// "image" file field.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, err := saveImage(c, h.uploadDir)
	if err != nil {
		return err
	}

	course, err := h.courseService.Create(c.Request().Context(), principal, ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Duration:    req.Duration,
		Level:       req.Level,
		Price:       req.Price,
		Rating:      req.Rating,
		Students:    req.Students,
		Image:       image,
		Skills:      req.Skills,
		Curriculum:  req.Curriculum,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "course created successfully", map[string]any{"course": course})
}

// Update applies a partial update to a course. A multipart "image" field
// replaces the stored image path.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	upd := ports.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Duration:    req.Duration,
		Level:       req.Level,
		Price:       req.Price,
		Rating:      req.Rating,
		Students:    req.Students,
		Skills:      req.Skills,
		Curriculum:  req.Curriculum,
		IsActive:    req.IsActive,
	}

	image, err := saveImage(c, h.uploadDir)
	if err != nil {
		return err
	}
	if image != "" {
		upd.Image = &image
	}

	course, err := h.courseService.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "course updated successfully", map[string]any{"course": course})
}

// Delete removes a course from the catalog.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.courseService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "course deleted successfully", nil)
}
