package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/api/handler"
	"github.com/shopmanagement/portal/internal/core/domain"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, handler.ErrorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/forgot-password/send-otp", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body handler.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func TestErrorHandler_EnvelopeFailureOn200(t *testing.T) {
	rec, body := handle(t, &domain.APIError{Status: http.StatusOK, Code: "2001", Message: "Email or mobile number is required"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error != "Email or mobile number is required" {
		t.Errorf("unexpected body %+v", body)
	}

	rec, _ = handle(t, &domain.APIError{Status: http.StatusOK, Code: "9999", Message: "Too many requests"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for a general error, got %d", rec.Code)
	}
}

func TestErrorHandler_APIErrorStatus(t *testing.T) {
	cases := []struct {
		err  *domain.APIError
		want int
	}{
		{&domain.APIError{Status: http.StatusNotFound, Code: "3001", Message: "Shop not found"}, http.StatusNotFound},
		{&domain.APIError{Status: domain.StatusNetwork, Err: errors.New("connection refused")}, http.StatusBadGateway},
		{&domain.APIError{Status: http.StatusOK, Code: "1003"}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if rec, _ := handle(t, tc.err); rec.Code != tc.want {
			t.Errorf("%v: got %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestErrorHandler_Cooldown(t *testing.T) {
	rec, body := handle(t, &domain.CooldownError{Remaining: 1500 * time.Millisecond})
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "2" || body.RetryAfter != 2 {
		t.Fatalf("unexpected cooldown answer %d %q %+v", rec.Code, rec.Header().Get("Retry-After"), body)
	}
}
