package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// successCode is the envelope statusCode of a successful call.
const successCode = "0000"

// Code is the envelope statusCode. The backend sends it as a string
// ("0000", "TOKEN_EXPIRED") and occasionally as a number.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("statusCode: %w", err)
	}
	*c = Code(n.String())
	return nil
}

// FieldErrors is the envelope validationErrors map. Non-string values are
// rendered with fmt.
type FieldErrors map[string]string

func (f *FieldErrors) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(FieldErrors, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	*f = out
	return nil
}

// Envelope is the wrapper of every backend response body.
type Envelope struct {
	Success          *bool           `json:"success,omitempty"`
	StatusCode       Code            `json:"statusCode,omitempty"`
	Message          string          `json:"message,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	ValidationErrors FieldErrors     `json:"validationErrors,omitempty"`
	Timestamp        string          `json:"timestamp,omitempty"`
	Path             string          `json:"path,omitempty"`
}

// OK reports whether the envelope signals success. An explicit success flag
// wins; otherwise statusCode "0000" or a 2xx code means success, and an
// envelope with neither is taken at face value.
func (e Envelope) OK() bool {
	if e.Success != nil {
		return *e.Success
	}
	switch code := string(e.StatusCode); code {
	case "", successCode:
		return true
	default:
		n, err := strconv.Atoi(code)
		return err == nil && n >= 200 && n < 300
	}
}

// ReadEnvelope consumes and closes resp.Body. A body that is empty or not an
// envelope yields a zero Envelope and raw holds whatever was read.
func ReadEnvelope(resp *http.Response) (env Envelope, raw []byte, err error) {
	defer resp.Body.Close()
	raw, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Envelope{}, raw, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Envelope{}, raw, nil
	}
	if json.Unmarshal(raw, &env) != nil {
		return Envelope{}, raw, nil
	}
	return env, raw, nil
}

// NewAPIError builds the failure for a response whose status or envelope
// reports an error.
func NewAPIError(req *http.Request, status int, env Envelope) *domain.APIError {
	code := string(env.StatusCode)
	if code == successCode {
		code = ""
	}
	return &domain.APIError{
		Status:           status,
		Code:             code,
		Message:          env.Message,
		ValidationErrors: env.ValidationErrors,
		Method:           req.Method,
		Path:             req.URL.Path,
	}
}
