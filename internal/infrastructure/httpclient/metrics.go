package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/metrics"
)

// Metrics records the count and latency of every backend call.
func Metrics() Interceptor {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			status := "0"
			if resp != nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			metrics.BackendRequestsTotal.WithLabelValues(req.Method, status).Inc()
			metrics.BackendRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// Logging writes one debug line per backend call.
func Logging(log zerolog.Logger) Interceptor {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			ev := log.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("latency", time.Since(start))
			if resp != nil {
				ev = ev.Int("status", resp.StatusCode)
			}
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("backend call")
			return resp, err
		}
	}
}
