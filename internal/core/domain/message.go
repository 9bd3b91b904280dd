package domain

import (
	"errors"
	"net/http"
)

// MessageDefaults are the texts used when a failure carries nothing better.
type MessageDefaults struct {
	ByStatus map[int]string
	Fallback string
}

// AuthMessages is used by screens that talk to /auth/ endpoints.
var AuthMessages = MessageDefaults{
	ByStatus: map[int]string{
		http.StatusUnauthorized: "Invalid credentials. Please try again.",
		http.StatusForbidden:    "Access denied. Please contact support.",
	},
	Fallback: "An error occurred during authentication.",
}

// InterceptorMessages is used by the global error interceptor.
var InterceptorMessages = MessageDefaults{
	ByStatus: map[int]string{
		StatusNetwork:                  "Network error. Please check your connection",
		http.StatusUnauthorized:        "Session expired. Please login again.",
		http.StatusForbidden:           "You don't have permission to access this resource",
		http.StatusNotFound:            "Resource not found",
		http.StatusInternalServerError: "Server error. Please try again later",
	},
	Fallback: "An unexpected error occurred",
}

var tokenCodeMessages = map[string]string{
	CodeTokenExpired:          "Session expired! Please login again.",
	CodeTokenInvalidated:      "Session logged out. Please login again.",
	CodeTokenMalformed:        "Invalid session. Please login again.",
	CodeTokenInvalid:          "Invalid session. Please login again.",
	CodeTokenInvalidSignature: "Security error. Please login again.",
}

// DisplayMessage derives the user-facing text for err. Priority: field
// validation map, 401 token codes, backend message, status default, fallback.
func DisplayMessage(err error, d MessageDefaults) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	var ae *APIError
	if !errors.As(err, &ae) {
		return d.Fallback
	}
	if s := ae.ValidationSummary(); s != "" {
		return s
	}
	status := ae.Status
	if status != StatusNetwork {
		status = ae.HTTPStatus()
	}
	if status == http.StatusUnauthorized {
		if m, ok := tokenCodeMessages[ae.Code]; ok {
			return m
		}
	}
	if ae.Message != "" {
		return ae.Message
	}
	if m, ok := d.ByStatus[status]; ok {
		return m
	}
	return d.Fallback
}
