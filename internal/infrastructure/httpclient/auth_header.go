package httpclient

import (
	"context"
	"net/http"
)

const (
	DefaultClientType = "web"
	DefaultPlatform   = "angular"
)

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
	IsAuthenticated(ctx context.Context) bool
}

// ClientHeaders identify the caller to the backend.
type ClientHeaders struct {
	ClientType string
	Platform   string
}

func (h ClientHeaders) withDefaults() ClientHeaders {
	if h.ClientType == "" {
		h.ClientType = DefaultClientType
	}
	if h.Platform == "" {
		h.Platform = DefaultPlatform
	}
	return h
}

// AuthHeader stamps every request with the client identification headers
// and, while the session is authenticated, the bearer token. The caller's
// request is never modified; a clone travels down the chain.
func AuthHeader(src TokenSource, headers ClientHeaders) Interceptor {
	headers = headers.withDefaults()
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			out := req.Clone(ctx)
			out.Header.Set("X-Client-Type", headers.ClientType)
			out.Header.Set("X-Platform", headers.Platform)
			if src != nil && src.IsAuthenticated(ctx) {
				if tok, ok := src.Token(ctx); ok {
					out.Header.Set("Authorization", "Bearer "+tok)
				}
			}
			return next(out)
		}
	}
}
