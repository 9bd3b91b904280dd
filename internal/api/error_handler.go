package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/api/handler"
	"github.com/shopmanagement/portal/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors and backend failures to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.ErrorResponse{Error: ve.Error(), Fields: ve.Fields}
	}

	var ce *domain.CooldownError
	if errors.As(err, &ce) {
		secs := int(math.Ceil(ce.Remaining.Seconds()))
		c.Response().Header().Set("Retry-After", fmt.Sprint(secs))
		return http.StatusTooManyRequests, handler.ErrorResponse{Error: ce.Error(), RetryAfter: secs}
	}

	// Backend failures keep their status, or take it from the envelope code
	// when the backend answered 200.
	var ae *domain.APIError
	if errors.As(err, &ae) {
		return ae.HTTPStatus(), handler.ErrorResponse{
			Error:  domain.DisplayMessage(ae, domain.InterceptorMessages),
			Fields: ae.ValidationErrors,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, handler.ErrorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNoShopContext):
		return http.StatusConflict, handler.ErrorResponse{Error: "no shop is selected for your account"}
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Error: "shop not found"}
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("session storage unavailable")
		return http.StatusServiceUnavailable, handler.ErrorResponse{Error: "session storage unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error"}
}
