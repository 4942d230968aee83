package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartstore/store-system/internal/core/domain"
)

const (
	// UserKey is the echo context key holding the authenticated *domain.User.
	UserKey = "user"

	basicChallenge = `Basic realm="store"`
)

// Authenticator resolves an Authorization header to a user.
type Authenticator interface {
	AuthenticateBasic(ctx context.Context, authHeader string) (*domain.User, bool, error)
}

// BasicAuth verifies the Authorization header and injects the user into the
// context. Every credential failure gets the same 401 so callers cannot tell
// an unknown email from a wrong password. Backend faults go to the error handler.
func BasicAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			user, ok, err := auth.AuthenticateBasic(c.Request().Context(), header)
			if err != nil {
				return err
			}
			if !ok {
				return Unauthorized(c)
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// OptionalBasicAuth behaves like BasicAuth when an Authorization header is
// present and lets anonymous requests through otherwise.
func OptionalBasicAuth(auth Authenticator) echo.MiddlewareFunc {
	required := BasicAuth(auth)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withAuth := required(next)
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			return withAuth(c)
		}
	}
}

// Unauthorized writes the uniform Basic-Auth challenge.
func Unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicChallenge)
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

// CurrentUser returns the user injected by BasicAuth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserKey).(*domain.User)
	return u, ok && u != nil
}
