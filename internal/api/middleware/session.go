package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/infrastructure/notify"
)

// CookieName carries the portal session id.
const CookieName = "portal_sid"

const scopeKey = "scope"

// Navigation remembers where the session layer sent the user during one
// request so the handler can pass it on.
type Navigation struct {
	mu      sync.Mutex
	route   string
	replace bool
}

func (n *Navigation) Navigate(_ context.Context, route string, replace bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.route, n.replace = route, replace
}

// Route is the last navigation target, or "".
func (n *Navigation) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// RequestScope is the session scope of the current request.
type RequestScope struct {
	*app.Scope
	Flash *notify.Flash
	Nav   *Navigation
}

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	App      *app.App
	Provider ports.StorageProvider
	Log      zerolog.Logger
	// Secure marks the cookie HTTPS-only.
	Secure bool
	MaxAge time.Duration
}

// Session opens the caller's storage scope, issuing a new session id when
// the cookie is missing or not a uuid, and builds its Session.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(CookieName); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					id = ck.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(cfg.MaxAge.Seconds()),
				})
			}

			ctx := c.Request().Context()
			storage, err := cfg.Provider.Open(ctx, id)
			if err != nil {
				return err
			}

			log := cfg.Log.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			flash := notify.NewFlash(storage, log)
			nav := &Navigation{}
			scope := cfg.App.Open(ctx, id, app.ScopeDeps{
				Storage:   storage,
				Notifier:  notify.Multi{flash, notify.NewLog(log)},
				Navigator: nav,
			})
			c.Set(scopeKey, &RequestScope{Scope: scope, Flash: flash, Nav: nav})
			return next(c)
		}
	}
}

// ScopeFrom returns the scope the Session middleware stored, or nil.
func ScopeFrom(c echo.Context) *RequestScope {
	s, _ := c.Get(scopeKey).(*RequestScope)
	return s
}
