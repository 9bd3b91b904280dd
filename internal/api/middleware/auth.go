package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/guard"
)

// Auth admits authenticated sessions. Anonymous callers are redirected to
// the login page with the attempted path; sessions with a forced password
// change are redirected to the change-password page.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope := ScopeFrom(c)
			if scope == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware missing")
			}
			d := guard.AuthGuard{Session: scope.Session}.Check(c.Request().Context(), guard.Route{Path: c.Request().URL.Path})
			if !d.Allow {
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			return next(c)
		}
	}
}
