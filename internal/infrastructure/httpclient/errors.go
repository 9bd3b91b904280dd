package httpclient

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

// quietPaths are endpoints whose screens report their own failures.
var quietPaths = []string{"/auth/", "/customer/"}

// ErrorOptions configure the error interceptor.
type ErrorOptions struct {
	Notifier ports.Notifier
	// OnUnauthorized runs once for every 401 response.
	OnUnauthorized func(ctx context.Context, err *domain.APIError)
	Log            zerolog.Logger
}

// Errors turns transport failures and non-2xx responses into
// *domain.APIError, tells the user what went wrong and hands 401s to
// OnUnauthorized. The error always propagates to the caller. Requests the
// caller cancelled pass through untouched.
func Errors(opts ErrorOptions) Interceptor {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			resp, err := next(req)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
					opts.Log.Debug().Str("path", req.URL.Path).Msg("request aborted by caller")
					return nil, err
				}
				apiErr := &domain.APIError{
					Status: domain.StatusNetwork,
					Method: req.Method,
					Path:   req.URL.Path,
					Err:    err,
				}
				opts.report(ctx, req, apiErr)
				return nil, apiErr
			}
			if resp.StatusCode < http.StatusBadRequest {
				return resp, nil
			}

			env, _, readErr := ReadEnvelope(resp)
			apiErr := NewAPIError(req, resp.StatusCode, env)
			apiErr.Err = readErr

			if resp.StatusCode == http.StatusUnauthorized && opts.OnUnauthorized != nil {
				opts.OnUnauthorized(ctx, apiErr)
			}
			opts.report(ctx, req, apiErr)
			return nil, apiErr
		}
	}
}

func (o ErrorOptions) report(ctx context.Context, req *http.Request, apiErr *domain.APIError) {
	ev := o.Log.Warn()
	if apiErr.Status == domain.StatusNetwork || apiErr.Status >= http.StatusInternalServerError {
		ev = o.Log.Error()
	}
	ev.Err(apiErr).Int("status", apiErr.Status).Str("code", apiErr.Code).Msg("backend request failed")

	if o.Notifier == nil || quiet(req.URL.Path) {
		return
	}
	d := domain.DefaultNotificationDuration
	if apiErr.Status == http.StatusUnauthorized {
		d = domain.AuthErrorDuration
	}
	o.Notifier.Notify(ctx, domain.Notification{
		Level:    domain.LevelError,
		Message:  domain.DisplayMessage(apiErr, domain.InterceptorMessages),
		Duration: d,
	})
}

func quiet(path string) bool {
	for _, p := range quietPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
