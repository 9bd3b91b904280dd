// Package httpclient holds the interceptor pipeline every backend request
// passes through.
package httpclient

import "net/http"

// Handler sends a request and returns its response.
type Handler func(*http.Request) (*http.Response, error)

// Interceptor wraps a Handler to observe or modify requests and responses.
type Interceptor func(Handler) Handler

// Chain applies interceptors around h. The first interceptor is the
// outermost: it sees the request first and the response last.
func Chain(h Handler, interceptors ...Interceptor) Handler {
	for i := len(interceptors) - 1; i >= 0; i-- {
		h = interceptors[i](h)
	}
	return h
}

// Transport adapts an *http.Client into the innermost Handler.
func Transport(c *http.Client) Handler {
	if c == nil {
		c = http.DefaultClient
	}
	return c.Do
}
