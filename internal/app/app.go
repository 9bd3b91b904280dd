// Package app wires one Session, with its own interceptor chain, per storage
// scope.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/core/service"
	"github.com/shopmanagement/portal/internal/infrastructure/backend"
	"github.com/shopmanagement/portal/internal/infrastructure/httpclient"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
)

// Options are the process-wide collaborators shared by every scope.
type Options struct {
	// Base is the backend client every scope derives its chain from.
	Base    *backend.Client
	Headers httpclient.ClientHeaders
	Events  ports.SessionEventRecorder
	// Cooldown gates OTP resends. When nil each scope keeps its windows in
	// its own Storage.
	Cooldown       ports.Cooldown
	CooldownWindow time.Duration
	Log            zerolog.Logger
	Now            func() time.Time
}

// App builds scopes.
type App struct {
	opts Options
}

func New(opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CooldownWindow <= 0 {
		opts.CooldownWindow = 60 * time.Second
	}
	return &App{opts: opts}
}

// Scope is everything one browser session or CLI profile works with.
type Scope struct {
	ID      string
	Store   *service.TokenStore
	Session *service.Session
	Account *service.Account
	Auth    ports.AuthClient
	Shops   ports.ShopClient
}

// ScopeDeps are the per-scope collaborators.
type ScopeDeps struct {
	Storage   ports.Storage
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Cooldown  ports.Cooldown
}

// Open assembles the scope id over deps.Storage. The scope's backend client
// attaches the stored token and expires the session when the backend
// answers 401.
func (a *App) Open(ctx context.Context, id string, deps ScopeDeps) *Scope {
	log := a.opts.Log.With().Str("scope", id).Logger()
	store := service.NewTokenStore(deps.Storage, log)

	var sess *service.Session
	client := a.opts.Base.With(
		httpclient.AuthHeader(tokenSource{store: store, now: a.opts.Now}, a.opts.Headers),
		httpclient.Errors(httpclient.ErrorOptions{
			Notifier: deps.Notifier,
			Log:      log,
			OnUnauthorized: func(ctx context.Context, apiErr *domain.APIError) {
				if sess != nil {
					sess.Expire(ctx, apiErr.Code)
				}
			},
		}),
	)
	auth := backend.NewAuthAPI(client)
	shops := backend.NewShopAPI(client)

	sess = service.NewSession(ctx, service.SessionDeps{
		Store:     store,
		Auth:      auth,
		Shops:     shops,
		Notifier:  deps.Notifier,
		Navigator: deps.Navigator,
		Events:    a.opts.Events,
		Log:       log,
		Scope:     id,
		Now:       a.opts.Now,
	})

	cooldown := deps.Cooldown
	if cooldown == nil {
		cooldown = a.opts.Cooldown
	}
	if cooldown == nil && deps.Storage != nil {
		cooldown = storage.NewCooldown(deps.Storage, a.opts.CooldownWindow)
	}

	return &Scope{
		ID:      id,
		Store:   store,
		Session: sess,
		Account: service.NewAccount(auth, cooldown, deps.Notifier, deps.Navigator, log),
		Auth:    auth,
		Shops:   shops,
	}
}

// tokenSource reads the token straight from the store, so the header
// interceptor does not depend on the Session it is built for.
type tokenSource struct {
	store *service.TokenStore
	now   func() time.Time
}

func (t tokenSource) Token(ctx context.Context) (string, bool) {
	return t.store.Token(ctx)
}

func (t tokenSource) IsAuthenticated(ctx context.Context) bool {
	tok, ok := t.store.Token(ctx)
	return ok && service.TokenValid(tok, t.now())
}
