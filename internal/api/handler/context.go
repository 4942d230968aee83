package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smartstore/store-system/internal/api/middleware"
	"github.com/smartstore/store-system/internal/core/domain"
)

// actor returns the user injected by the BasicAuth middleware. A missing user
// means the route was mounted without authentication.
func actor(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
