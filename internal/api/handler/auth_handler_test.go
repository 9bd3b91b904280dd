package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/api/middleware"
	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/service"
	"github.com/shopmanagement/portal/internal/infrastructure/notify"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
)

type stubAuthClient struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	registerFn func(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	logouts    int
}

func (s *stubAuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAuthClient) VerifyOTP(context.Context, domain.OTPVerification) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{}, nil
}
func (s *stubAuthClient) ResendOTP(context.Context, domain.OTPResend) error  { return nil }
func (s *stubAuthClient) SendPasswordResetOTP(context.Context, string) error { return nil }
func (s *stubAuthClient) VerifyPasswordResetOTP(context.Context, string, string) error {
	return nil
}
func (s *stubAuthClient) ResetPassword(context.Context, domain.PasswordReset) error { return nil }
func (s *stubAuthClient) ResendPasswordResetOTP(context.Context, string) error      { return nil }
func (s *stubAuthClient) Logout(context.Context) error {
	s.logouts++
	return nil
}
func (s *stubAuthClient) ChangePassword(context.Context, domain.PasswordChange) error { return nil }
func (s *stubAuthClient) PasswordStatus(context.Context) (*domain.PasswordStatus, error) {
	return &domain.PasswordStatus{}, nil
}

func tokenFor(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newScope(t *testing.T, auth *stubAuthClient) *middleware.RequestScope {
	t.Helper()
	mem := storage.NewMemory()
	store := service.NewTokenStore(mem, zerolog.Nop())
	flash := notify.NewFlash(mem, zerolog.Nop())
	nav := &middleware.Navigation{}
	sess := service.NewSession(context.Background(), service.SessionDeps{
		Store: store, Auth: auth, Notifier: flash, Navigator: nav, Log: zerolog.Nop(),
	})
	return &middleware.RequestScope{
		Scope: &app.Scope{
			ID:      "test",
			Store:   store,
			Session: sess,
			Account: service.NewAccount(auth, nil, flash, nav, zerolog.Nop()),
			Auth:    auth,
		},
		Flash: flash,
		Nav:   nav,
	}
}

func newContext(method, target, body string, scope *middleware.RequestScope) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if scope != nil {
		c.Set("scope", scope)
	}
	return c, rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	tok := tokenFor(t)
	stub := &stubAuthClient{
		loginFn: func(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
			if creds.Username != "alice" || creds.Password != "secret" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return &domain.AuthResponse{AccessToken: tok, Username: "alice", Role: "MANAGER", UserID: 3}, nil
		},
	}
	scope := newScope(t, stub)
	c, rec := newContext(http.MethodPost, "/auth/login?returnUrl=%2Fproducts%2Fmaster", `{"username":"alice","password":"secret"}`, scope)

	if err := NewAuthHandler().Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Authenticated || resp.User == nil || resp.User.Role != domain.RoleManager {
		t.Fatalf("unexpected session payload: %+v", resp)
	}
	if resp.Redirect != "/products/master" {
		t.Fatalf("expected returnUrl redirect, got %q", resp.Redirect)
	}
}

func TestAuthHandler_Login_ForcedChangeWins(t *testing.T) {
	tok := tokenFor(t)
	stub := &stubAuthClient{
		loginFn: func(context.Context, domain.Credentials) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{AccessToken: tok, Username: "alice", Role: "USER", IsTemporaryPassword: true}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/login?returnUrl=%2Fcustomer%2Fcart", `{"username":"alice","password":"secret"}`, newScope(t, stub))

	if err := NewAuthHandler().Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Redirect != domain.RouteChangePassword || !resp.PasswordChangeRequired {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestAuthHandler_Login_BackendError(t *testing.T) {
	stub := &stubAuthClient{
		loginFn: func(context.Context, domain.Credentials) (*domain.AuthResponse, error) {
			return nil, &domain.APIError{Status: http.StatusUnauthorized, Message: "Invalid username or password"}
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"nope"}`, newScope(t, stub))

	err := NewAuthHandler().Login(c)
	if _, ok := err.(*domain.APIError); !ok {
		t.Fatalf("expected the backend error to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/auth/login", `{"username":`, newScope(t, &stubAuthClient{}))

	err := NewAuthHandler().Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_WaitsForOTP(t *testing.T) {
	stub := &stubAuthClient{
		registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{Username: req.Username, Role: "USER"}, nil
		},
	}
	body := `{"username":"alice","password":"secret1","email":"a@example.com"}`
	c, rec := newContext(http.MethodPost, "/auth/register", body, newScope(t, stub))

	if err := NewAuthHandler().Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Authenticated || resp.Redirect != "/auth/verify-otp" {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tok := tokenFor(t)
	stub := &stubAuthClient{
		loginFn: func(context.Context, domain.Credentials) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{AccessToken: tok, Username: "alice", Role: "ADMIN"}, nil
		},
	}
	scope := newScope(t, stub)
	_, _ = scope.Session.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})

	c, rec := newContext(http.MethodPost, "/auth/logout", "", scope)
	if err := NewAuthHandler().Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp messageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Redirect != domain.RouteLogin || stub.logouts != 1 {
		t.Fatalf("unexpected logout: %+v (server calls %d)", resp, stub.logouts)
	}
	if scope.Session.CurrentUser() != nil {
		t.Fatalf("user survived logout")
	}
}

func TestAuthHandler_MissingScope(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/auth/me", "", nil)

	err := NewAuthHandler().Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestSafeReturnURL(t *testing.T) {
	cases := map[string]string{
		"/dashboard":           "/dashboard",
		"/admin/users?page=2":  "/admin/users?page=2",
		"https://evil.example": "",
		"//evil.example":       "",
		"/\\evil.example":      "",
		"":                     "",
	}
	for in, want := range cases {
		if got := safeReturnURL(in); got != want {
			t.Errorf("safeReturnURL(%q) = %q, want %q", in, got, want)
		}
	}
}
