package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/ports"
)

type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addCartItemRequest struct {
	CourseID   string  `json:"courseId" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Instructor string  `json:"instructor"`
	Price      float64 `json:"price" validate:"gte=0"`
	Image      string  `json:"image"`
	Duration   string  `json:"duration"`
	Level      string  `json:"level"`
}

// Get returns the caller's cart.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.Get(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, "", len(cart), map[string]any{"cart": cart})
}

// Add puts a course snapshot into the caller's cart.
//
// @Summary      Add a course to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Course snapshot"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.cartService.Add(c.Request().Context(), principal.ID, ports.AddCartItemInput{
		CourseID:   req.CourseID,
		Title:      req.Title,
		Instructor: req.Instructor,
		Price:      req.Price,
		Image:      req.Image,
		Duration:   req.Duration,
		Level:      req.Level,
	})
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, "course added to cart", len(cart), map[string]any{"cart": cart})
}

// Remove takes a course out of the caller's cart. Removing an absent course
// is a no-op.
//
// @Summary      Remove a course from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  envelope
// @Router       /api/cart/{courseId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.Remove(c.Request().Context(), principal.ID, c.Param("courseId"))
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, "course removed from cart", len(cart), map[string]any{"cart": cart})
}

// Clear empties the caller's cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.Clear(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, "cart cleared", len(cart), map[string]any{"cart": cart})
}
