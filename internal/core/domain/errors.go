package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrMalformedToken     = errors.New("malformed token")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrShopNotFound       = errors.New("shop not found")
	ErrNoShopContext      = errors.New("no shop selected for this session")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrForbidden          = errors.New("access forbidden")
)

// StatusNetwork is the pseudo status of a request that never got a response.
const StatusNetwork = 0

// Backend token error codes carried in the envelope statusCode on 401.
const (
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenInvalidated      = "TOKEN_INVALIDATED"
	CodeTokenMalformed        = "TOKEN_MALFORMED"
	CodeTokenInvalid          = "TOKEN_INVALID"
	CodeTokenInvalidSignature = "TOKEN_INVALID_SIGNATURE"
)

// APIError is the single failure type produced at the HTTP boundary. It covers
// transport failures (Status 0), non-2xx responses and 2xx envelopes whose
// success flag is off.
type APIError struct {
	Status           int
	Code             string
	Message          string
	ValidationErrors map[string]string
	Method           string
	Path             string
	Err              error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets callers test API failures against the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.HTTPStatus() == http.StatusUnauthorized
	case ErrForbidden:
		return e.HTTPStatus() == http.StatusForbidden
	}
	return false
}

// HTTPStatus is the status the failure stands for. The backend reports some
// failures as HTTP 200 with a failure code in the envelope; those are mapped
// from the code. A request that never got a response is a bad gateway.
func (e *APIError) HTTPStatus() int {
	switch {
	case e.Status >= http.StatusBadRequest:
		return e.Status
	case e.Status == StatusNetwork:
		return http.StatusBadGateway
	}
	return StatusForCode(e.Code)
}

// StatusForCode maps a backend envelope code to an HTTP status.
func StatusForCode(code string) int {
	switch code {
	case "1001", "1003", "1004", "1005",
		CodeTokenExpired, CodeTokenInvalidated, CodeTokenMalformed, CodeTokenInvalid, CodeTokenInvalidSignature:
		return http.StatusUnauthorized
	case "1002":
		return http.StatusForbidden
	}
	if len(code) == 4 {
		switch code[0] {
		case '2':
			return http.StatusBadRequest
		case '3':
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// ValidationSummary joins the field errors in a stable order.
func (e *APIError) ValidationSummary() string {
	if len(e.ValidationErrors) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.ValidationErrors))
	for k := range e.ValidationErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.ValidationErrors[k])
	}
	return "Validation errors: " + strings.Join(msgs, ", ")
}

// CooldownError is returned when an OTP resend is attempted too early.
type CooldownError struct {
	Remaining time.Duration
}

var ErrCooldownActive = errors.New("resend cooldown active")

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %ds before requesting another code", int(e.Remaining.Round(time.Second).Seconds()))
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldownActive }

// ValidationError reports request fields rejected before anything was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}
