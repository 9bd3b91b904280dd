package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/service"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice", "exp": exp.Unix()})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// loggedIn returns a request scope holding a valid session for role. A
// RoleUnknown role yields an anonymous scope.
func loggedIn(t *testing.T, role domain.Role, flags domain.PasswordFlags) *RequestScope {
	t.Helper()
	ctx := context.Background()
	store := service.NewTokenStore(storage.NewMemory(), zerolog.Nop())
	if role != domain.RoleUnknown {
		user := domain.User{ID: 1, Username: "alice", Role: role}
		if err := store.Set(ctx, signedToken(t, time.Now().Add(time.Hour)), user, flags); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	sess := service.NewSession(ctx, service.SessionDeps{Store: store, Log: zerolog.Nop()})
	return &RequestScope{Scope: &app.Scope{ID: "test", Store: store, Session: sess}, Nav: &Navigation{}}
}

func serve(t *testing.T, mw echo.MiddlewareFunc, scope *RequestScope, path string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if scope != nil {
		c.Set(scopeKey, scope)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	rec, called := serve(t, Auth(), loggedIn(t, domain.RoleAdmin, domain.PasswordFlags{}), "/dashboard")
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_AnonymousGoesToLogin(t *testing.T) {
	rec, called := serve(t, Auth(), loggedIn(t, domain.RoleUnknown, domain.PasswordFlags{}), "/admin/users?page=2")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login?returnUrl=%2Fadmin%2Fusers" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestAuthMiddleware_ExpiredTokenGoesToLogin(t *testing.T) {
	ctx := context.Background()
	store := service.NewTokenStore(storage.NewMemory(), zerolog.Nop())
	_ = store.Set(ctx, signedToken(t, time.Now().Add(-time.Minute)), domain.User{Username: "alice", Role: domain.RoleAdmin}, domain.PasswordFlags{})
	sess := service.NewSession(ctx, service.SessionDeps{Store: store, Log: zerolog.Nop()})
	scope := &RequestScope{Scope: &app.Scope{Store: store, Session: sess}, Nav: &Navigation{}}

	rec, called := serve(t, Auth(), scope, "/dashboard")
	if called || rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_ForcedPasswordChange(t *testing.T) {
	scope := loggedIn(t, domain.RoleUser, domain.PasswordFlags{ChangeRequired: true})

	rec, called := serve(t, Auth(), scope, "/customer/shops")
	if called || rec.Header().Get(echo.HeaderLocation) != domain.RouteChangePassword {
		t.Fatalf("expected change-password redirect, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	_, called = serve(t, Auth(), scope, domain.RouteChangePassword)
	if !called {
		t.Fatalf("change-password page must stay reachable")
	}
}

func TestAuthMiddleware_MissingSessionMiddleware(t *testing.T) {
	rec, called := serve(t, Auth(), nil, "/dashboard")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
