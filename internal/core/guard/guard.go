// Package guard decides whether a navigation into a protected route may
// proceed. Both guards are pure functions of the session and the route; they
// hold no state of their own.
package guard

import (
	"context"
	"net/url"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/metrics"
)

// SessionView is the part of the session the guards read.
type SessionView interface {
	IsAuthenticated(ctx context.Context) bool
	PasswordChangeRequired(ctx context.Context) bool
	CurrentUser() *domain.User
}

// Route is the target of a navigation. An empty Roles list means any
// authenticated user may enter.
type Route struct {
	Path  string
	Roles []domain.Role
}

// Decision is the outcome of a guard. When Allow is false, Redirect names the
// route the user is sent to instead.
type Decision struct {
	Allow    bool
	Redirect string
}

var allow = Decision{Allow: true}

func redirect(to string) Decision { return Decision{Redirect: to} }

// LoginRedirect is the login route carrying the attempted path.
func LoginRedirect(path string) string {
	if path == "" {
		return domain.RouteLogin
	}
	return domain.RouteLogin + "?returnUrl=" + url.QueryEscape(path)
}

// AuthGuard sends anonymous users to login and users with a forced password
// change to the change-password screen.
type AuthGuard struct {
	Session SessionView
}

func (g AuthGuard) Check(ctx context.Context, r Route) Decision {
	if !g.Session.IsAuthenticated(ctx) {
		metrics.GuardDecisionsTotal.WithLabelValues("auth", "login").Inc()
		return redirect(LoginRedirect(r.Path))
	}
	if g.Session.PasswordChangeRequired(ctx) && r.Path != domain.RouteChangePassword {
		metrics.GuardDecisionsTotal.WithLabelValues("auth", "change_password").Inc()
		return redirect(domain.RouteChangePassword)
	}
	metrics.GuardDecisionsTotal.WithLabelValues("auth", "allow").Inc()
	return allow
}

// RoleGuard admits users whose role is declared on the route. Everyone else
// lands on their own role's default route, never on the route's.
type RoleGuard struct {
	Session SessionView
}

func (g RoleGuard) Check(ctx context.Context, r Route) Decision {
	if !g.Session.IsAuthenticated(ctx) {
		metrics.GuardDecisionsTotal.WithLabelValues("role", "login").Inc()
		return redirect(domain.RouteLogin)
	}
	if len(r.Roles) == 0 {
		metrics.GuardDecisionsTotal.WithLabelValues("role", "allow").Inc()
		return allow
	}

	role := domain.RoleUnknown
	if u := g.Session.CurrentUser(); u != nil {
		role = u.Role
	}
	for _, want := range r.Roles {
		if role == want {
			metrics.GuardDecisionsTotal.WithLabelValues("role", "allow").Inc()
			return allow
		}
	}

	if !role.Known() {
		metrics.GuardDecisionsTotal.WithLabelValues("role", "unauthorized").Inc()
		return redirect(domain.RouteUnauthorized)
	}
	metrics.GuardDecisionsTotal.WithLabelValues("role", "landing").Inc()
	return redirect(role.Profile().DefaultRoute)
}

// Check runs the auth guard and then the role guard, stopping at the first
// redirect.
func Check(ctx context.Context, s SessionView, r Route) Decision {
	if d := (AuthGuard{Session: s}).Check(ctx, r); !d.Allow {
		return d
	}
	return RoleGuard{Session: s}.Check(ctx, r)
}
