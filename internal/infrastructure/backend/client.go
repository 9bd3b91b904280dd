// Package backend talks to the shop-management REST API. Every call goes
// through the httpclient interceptor chain and every response is unwrapped
// from the API envelope exactly once, here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/infrastructure/httpclient"
)

const defaultTimeout = 30 * time.Second

// Client is an immutable handle on the REST API. With derives clients that
// add interceptors, so a shared base can serve many sessions.
type Client struct {
	baseURL      string
	transport    httpclient.Handler
	interceptors []httpclient.Interceptor
	handler      httpclient.Handler
	log          zerolog.Logger
}

// NewClient returns a client for baseURL (for example
// "http://localhost:8080/api"). A nil hc gets a client with a 30s timeout.
func NewClient(baseURL string, hc *http.Client, log zerolog.Logger, interceptors ...httpclient.Interceptor) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: httpclient.Transport(hc),
		log:       log,
	}
	return c.With(interceptors...)
}

// With returns a copy of c whose chain runs interceptors outside the ones c
// already has.
func (c *Client) With(interceptors ...httpclient.Interceptor) *Client {
	out := *c
	out.interceptors = append(append([]httpclient.Interceptor{}, interceptors...), c.interceptors...)
	out.handler = httpclient.Chain(out.transport, out.interceptors...)
	return &out
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// call sends one request and decodes the envelope's data into T. Responses
// the error interceptor did not already reject are still checked for an
// envelope-level failure.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	resp, err := c.handler(req)
	if err != nil {
		return zero, err
	}

	env, raw, err := httpclient.ReadEnvelope(resp)
	if err != nil {
		return zero, err
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.OK() {
		return zero, httpclient.NewAPIError(req, resp.StatusCode, env)
	}
	return decodeData[T](env, raw)
}

// decodeData reads T from the envelope data, or from the whole body when the
// backend answered without an envelope.
func decodeData[T any](env httpclient.Envelope, raw []byte) (T, error) {
	var out T
	payload := []byte(env.Data)
	if len(payload) == 0 && env.Success == nil && env.StatusCode == "" {
		payload = raw
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode response data: %w", err)
	}
	return out, nil
}

// empty is the data type of calls whose payload is ignored.
type empty = json.RawMessage
