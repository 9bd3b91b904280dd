package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/api/middleware"
)

// ctxScope returns the session scope opened by the Session middleware. A
// missing scope means the route was registered outside the middleware.
func ctxScope(c echo.Context) (*middleware.RequestScope, error) {
	scope := middleware.ScopeFrom(c)
	if scope == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing session scope")
	}
	return scope, nil
}
