package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartstore/store-system/internal/api/metrics"
	"github.com/smartstore/store-system/internal/core/domain"
)

// RBAC enforces role-based access control. The caller must hold one of the
// allowed roles exactly.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return Unauthorized(c)
			}
			if _, ok := allowed[user.Role]; !ok {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

// SelfOrRole lets a user act on the resource named by the path parameter
// param when it is their own email, and otherwise requires at least min.
func SelfOrRole(param string, min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return Unauthorized(c)
			}
			if user.Email != c.Param(param) && !user.Role.AtLeast(min) {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

func forbidden(c echo.Context) error {
	metrics.AccessDeniedTotal.WithLabelValues(c.Request().Method + " " + c.Path()).Inc()
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}
