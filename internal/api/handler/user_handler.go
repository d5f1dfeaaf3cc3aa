package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateBatch creates multiple users in one call (admin only).
//
// @Summary      Create users in batch
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      []createUserRequest  true  "Users to create"
// @Success      201   {array}   userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) CreateBatch(c echo.Context) error {
	var reqs []createUserRequest
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one user is required"})
	}
	for _, req := range reqs {
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
	}

	users, err := h.service.CreateBatch(c.Request().Context(), toCreateInputs(reqs))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toUserResponses(users))
}

// List returns all users without pagination (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Page returns one page of users; open to unauthenticated callers.
//
// @Summary      List users with pagination
// @Tags         users
// @Produce      json
// @Param        page  query     int     false  "Page number (0-based)"
// @Param        size  query     int     false  "Page size (default 20, max 100)"
// @Param        sort  query     string  false  "Sort, e.g. name,asc or created_at,desc"
// @Success      200   {object}  pageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/users/page [get]
func (h *UserHandler) Page(c echo.Context) error {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "page must be an integer"})
	}
	size, err := intQuery(c, "size", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "size must be an integer"})
	}

	result, err := h.service.Page(c.Request().Context(), ports.PageInput{
		Page: page,
		Size: size,
		Sort: c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result))
}

// Get returns a single user by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update replaces a user's fields by id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user by id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BasicAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// intQuery parses an optional integer query parameter.
func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
