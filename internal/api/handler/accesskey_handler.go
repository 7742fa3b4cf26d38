package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nextgen-lms/backend/internal/core/ports"
)

type AccessKeyHandler struct {
	keyService ports.AccessKeyService
}

func NewAccessKeyHandler(keyService ports.AccessKeyService) *AccessKeyHandler {
	return &AccessKeyHandler{keyService: keyService}
}

type createAccessKeyRequest struct {
	Key        string     `json:"key" validate:"required"`
	CourseID   string     `json:"courseId" validate:"required"`
	ExpiryDate *time.Time `json:"expiryDate"`
	MaxUses    *int       `json:"maxUses" validate:"omitempty,gt=0"`
	IsActive   *bool      `json:"isActive"`
}

type updateAccessKeyRequest struct {
	Key          *string    `json:"key"`
	CourseID     *string    `json:"courseId"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	ClearExpiry  bool       `json:"clearExpiry"`
	MaxUses      *int       `json:"maxUses" validate:"omitempty,gt=0"`
	ClearMaxUses bool       `json:"clearMaxUses"`
	IsActive     *bool      `json:"isActive"`
}

type redeemKeyRequest struct {
	Key      string `json:"key" validate:"required"`
	CourseID string `json:"courseId" validate:"required"`
	UserID   string `json:"userId"`
}

// Create registers a new redeemable key.
//
// @Summary      Create an access key
// @Tags         access-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccessKeyRequest  true  "Key details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /api/access-keys [post]
func (h *AccessKeyHandler) Create(c echo.Context) error {
	var req createAccessKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key, err := h.keyService.Create(c.Request().Context(), ports.CreateAccessKeyInput{
		Key:        req.Key,
		CourseID:   req.CourseID,
		ExpiryDate: req.ExpiryDate,
		MaxUses:    req.MaxUses,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "access key created successfully", map[string]any{"accessKey": key})
}

// List returns keys, optionally filtered by course, newest first.
//
// @Summary      List access keys
// @Tags         access-keys
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  query     string  false  "Filter by course"
// @Success      200       {object}  envelope
// @Router       /api/access-keys [get]
func (h *AccessKeyHandler) List(c echo.Context) error {
	keys, err := h.keyService.List(c.Request().Context(), c.QueryParam("courseId"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, "", len(keys), map[string]any{"accessKeys": keys})
}

// Get returns a single key by id.
//
// @Summary      Get an access key
// @Tags         access-keys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/access-keys/{id} [get]
func (h *AccessKeyHandler) Get(c echo.Context) error {
	key, err := h.keyService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", map[string]any{"accessKey": key})
}

// Update applies a partial update to a key. The usage counter is not
// client-writable.
//
// @Summary      Update an access key
// @Tags         access-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Key id"
// @Param        body  body      updateAccessKeyRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/access-keys/{id} [put]
func (h *AccessKeyHandler) Update(c echo.Context) error {
	var req updateAccessKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key, err := h.keyService.Update(c.Request().Context(), c.Param("id"), ports.AccessKeyUpdate{
		Key:          req.Key,
		CourseID:     req.CourseID,
		ExpiryDate:   req.ExpiryDate,
		ClearExpiry:  req.ClearExpiry,
		MaxUses:      req.MaxUses,
		ClearMaxUses: req.ClearMaxUses,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "access key updated successfully", map[string]any{"accessKey": key})
}

// Delete removes a key.
//
// @Summary      Delete an access key
// @Tags         access-keys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/access-keys/{id} [delete]
func (h *AccessKeyHandler) Delete(c echo.Context) error {
	if err := h.keyService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "access key deleted successfully", nil)
}

// Redeem validates a key against its course, consumes one use, and grants
// access when a user is identified. Public route; anonymous redemptions
// consume a use but record no grant.
//
// @Summary      Redeem an access key
// @Tags         access-keys
// @Accept       json
// @Produce      json
// @Param        body  body      redeemKeyRequest  true  "Redemption request"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/access-keys/validate [post]
func (h *AccessKeyHandler) Redeem(c echo.Context) error {
	var req redeemKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.keyService.Redeem(c.Request().Context(), ports.RedeemInput{
		Key:      req.Key,
		CourseID: req.CourseID,
		UserID:   req.UserID,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "access key is valid", map[string]any{
		"courseId":      result.CourseID,
		"accessGranted": result.AccessGranted,
	})
}
