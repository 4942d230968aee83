package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartstore/store-system/internal/api/metrics"
	"github.com/smartstore/store-system/internal/api/middleware"
	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// UserHandler exposes account management over HTTP.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// Register creates a new user account. Anyone may register a USER; asking for
// any other role requires an authenticated ADMIN.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	var (
		user *domain.User
		err  error
	)
	if strings.TrimSpace(req.Role) == "" {
		user, err = h.auth.RegisterUser(ctx, req.Email, req.Password, req.Name)
	} else {
		if domain.ParseRole(req.Role) != domain.RoleUser {
			caller, ok := middleware.CurrentUser(c)
			if !ok || caller.Role != domain.RoleAdmin {
				metrics.AccessDeniedTotal.WithLabelValues("register_privileged").Inc()
				return domain.ErrForbidden
			}
		}
		user, err = h.auth.RegisterUserWithRole(ctx, req.Email, req.Password, req.Name, req.Role)
	}
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns every registered user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.auth.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get returns a single user by email.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  userResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/v1/users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, found, err := h.auth.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update changes the password and/or name of a user. Blank fields are kept.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        email  path      string             true  "User email"
// @Param        body   body      updateUserRequest  true  "Fields to change"
// @Success      200    {object}  userResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/v1/users/{email} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	user, found, err := h.auth.UpdateUser(c.Request().Context(), c.Param("email"), req.Password, req.Name)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BasicAuth
// @Param        email  path  string  true  "User email"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{email} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	deleted, err := h.auth.DeleteUser(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated caller. The CLI uses it to check credentials.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/auth/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
