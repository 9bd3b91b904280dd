package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagement/portal/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	rec, called := serve(t, RBAC(domain.RoleAdmin, domain.RoleManager), loggedIn(t, domain.RoleAdmin, domain.PasswordFlags{}), "/admin/shops")
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_EmptyListAdmitsAnyRole(t *testing.T) {
	_, called := serve(t, RBAC(), loggedIn(t, domain.RoleDeliveryPartner, domain.PasswordFlags{}), "/menu")
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_RedirectsToOwnLanding(t *testing.T) {
	cases := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleShopOwner, "/shop-owner/dashboard"},
		{domain.RoleUser, "/customer/shops"},
		{domain.RoleDeliveryPartner, "/delivery/partner/dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.role.String(), func(t *testing.T) {
			rec, called := serve(t, RBAC(domain.RoleAdmin), loggedIn(t, tc.role, domain.PasswordFlags{}), "/admin/shops")
			if called {
				t.Fatalf("should not reach next handler")
			}
			if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != tc.want {
				t.Fatalf("expected redirect to %s, got %d %q", tc.want, rec.Code, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestRBAC_AnonymousGoesToLogin(t *testing.T) {
	rec, called := serve(t, RBAC(domain.RoleAdmin), loggedIn(t, domain.RoleUnknown, domain.PasswordFlags{}), "/admin/shops")
	if called {
		t.Fatalf("should not reach next handler")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login?returnUrl=%2Fadmin%2Fshops" {
		t.Fatalf("unexpected location %q", loc)
	}
}
