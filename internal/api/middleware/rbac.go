package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/guard"
)

// RBAC runs both route guards for a route open to allowedRoles; an empty
// list admits any authenticated user. Blocked requests are redirected.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope := ScopeFrom(c)
			if scope == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware missing")
			}
			route := guard.Route{Path: c.Request().URL.Path, Roles: allowedRoles}
			if d := guard.Check(c.Request().Context(), scope.Session, route); !d.Allow {
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			return next(c)
		}
	}
}
