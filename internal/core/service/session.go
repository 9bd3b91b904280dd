package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/metrics"
)

const defaultShopLookupTimeout = 15 * time.Second

// SessionDeps are the collaborators of a Session. Only Store and Auth are
// required.
type SessionDeps struct {
	Store     *TokenStore
	Auth      ports.AuthClient
	Shops     ports.ShopClient
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Events    ports.SessionEventRecorder
	Log       zerolog.Logger

	// Scope names the storage scope in audit events (portal session id, CLI profile).
	Scope string
	// Now defaults to time.Now.
	Now               func() time.Time
	ShopLookupTimeout time.Duration
}

// Session owns "who is logged in" for one storage scope. It is the only
// writer of the current user; everything else reads it.
type Session struct {
	store  *TokenStore
	auth   ports.AuthClient
	shops  ports.ShopClient
	notify ports.Notifier
	nav    ports.Navigator
	events ports.SessionEventRecorder
	log    zerolog.Logger
	scope  string
	now    func() time.Time

	shopTimeout time.Duration
	users       *userStream
	loggingOut  atomic.Bool
	bg          sync.WaitGroup
}

// NewSession builds a Session seeded from the stored user record, which is
// only trusted while the stored token is still valid.
func NewSession(ctx context.Context, deps SessionDeps) *Session {
	s := &Session{
		store:       deps.Store,
		auth:        deps.Auth,
		shops:       deps.Shops,
		notify:      deps.Notifier,
		nav:         deps.Navigator,
		events:      deps.Events,
		log:         deps.Log,
		scope:       deps.Scope,
		now:         deps.Now,
		shopTimeout: deps.ShopLookupTimeout,
	}
	if s.store == nil {
		s.store = NewTokenStore(nil, deps.Log)
	}
	if s.notify == nil {
		s.notify = discard{}
	}
	if s.nav == nil {
		s.nav = discard{}
	}
	if s.events == nil {
		s.events = discard{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.shopTimeout <= 0 {
		s.shopTimeout = defaultShopLookupTimeout
	}

	var initial *domain.User
	if u, ok := s.store.User(ctx); ok && s.IsAuthenticated(ctx) {
		initial = u
	}
	s.users = newUserStream(initial)
	return s
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Session) CurrentUser() *domain.User {
	return s.users.current()
}

// Subscribe delivers the current user immediately and every later change.
// The returned func stops the subscription and closes the channel.
func (s *Session) Subscribe() (<-chan *domain.User, func()) {
	return s.users.subscribe()
}

// Token returns the stored bearer token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	return s.store.Token(ctx)
}

// IsAuthenticated reports whether a token is stored and has not expired.
// Malformed tokens count as unauthenticated.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	tok, ok := s.store.Token(ctx)
	if !ok {
		return false
	}
	return TokenValid(tok, s.now())
}

// Login replaces any stored session with the one the backend grants for
// creds. On failure the user is notified and the backend error is returned.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	if err := Validate(creds); err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}

	// A previous user's token or role must not leak into this login.
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clearing previous session failed")
	}

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.record(ctx, domain.SessionEvent{Type: domain.EventLoginFailed, Username: creds.Username, Reason: err.Error()})
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}

	user, err := s.establish(ctx, resp)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(ctx, domain.SessionEvent{Type: domain.EventLogin, Username: user.Username, Role: user.Role.String()})
	s.show(ctx, domain.LevelSuccess, "Welcome back! Login successful.")

	if user.Role == domain.RoleShopOwner {
		s.lookupShop(ctx, user.Username)
	}
	return resp, nil
}

// Register creates an account; when the backend already issues a token the
// new session is established right away.
func (s *Session) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := Validate(req); err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}
	if resp.AccessToken != "" {
		if _, err := s.establish(ctx, resp); err != nil {
			s.fail(ctx, err, domain.AuthMessages)
			return nil, err
		}
	}
	s.show(ctx, domain.LevelSuccess, "Registration successful! Please verify the code we sent you.")
	return resp, nil
}

func (s *Session) establish(ctx context.Context, resp *domain.AuthResponse) (domain.User, error) {
	user := resp.User(s.now())
	if err := s.store.Set(ctx, resp.AccessToken, user, resp.PasswordFlags()); err != nil {
		// A token stored without its user would pass the auth guard.
		if cerr := s.store.Clear(ctx); cerr != nil {
			s.log.Warn().Err(cerr).Msg("clearing partial session failed")
		}
		return domain.User{}, err
	}
	u := user
	s.users.publish(&u)
	return user, nil
}

// lookupShop resolves and caches the owner's shop without holding up the
// login; its failure never undoes the session.
func (s *Session) lookupShop(ctx context.Context, username string) {
	if s.shops == nil {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shopTimeout)
		defer cancel()

		shop, err := s.shops.MyShop(lctx, username)
		switch {
		case errors.Is(err, domain.ErrShopNotFound):
			metrics.ShopLookupsTotal.WithLabelValues("not_found").Inc()
			s.log.Info().Str("username", username).Msg("no shop registered for shop owner")
			return
		case err != nil:
			metrics.ShopLookupsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("username", username).Msg("shop lookup failed")
			return
		}

		// The user may have logged out while the lookup was in flight.
		if cur := s.CurrentUser(); cur == nil || cur.Username != username {
			return
		}
		if err := s.store.SetShop(lctx, *shop); err != nil {
			s.log.Warn().Err(err).Int64("shop_id", shop.ID).Msg("caching shop failed")
			return
		}
		metrics.ShopLookupsTotal.WithLabelValues("found").Inc()
	}()
}

// Wait blocks until background work started by the session has finished.
func (s *Session) Wait() {
	s.bg.Wait()
}

// Logout tells the backend the session is over, then clears local state no
// matter what the backend answered.
func (s *Session) Logout(ctx context.Context) {
	s.loggingOut.Store(true)
	defer s.loggingOut.Store(false)

	server := "skipped"
	if _, ok := s.store.Token(ctx); ok {
		if err := s.auth.Logout(ctx); err != nil {
			server = "failed"
			s.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
		} else {
			server = "ok"
		}
	}
	metrics.LogoutsTotal.WithLabelValues(server).Inc()

	user := s.CurrentUser()
	s.clearLocal(ctx)
	s.nav.Navigate(ctx, domain.RouteLogin, true)
	s.show(ctx, domain.LevelInfo, "You have been logged out successfully.")
	s.record(ctx, eventFor(domain.EventLogout, user, ""))
}

// Expire drops a session the backend no longer accepts. It does not call the
// backend and leaves user messaging to the caller. Expiries raised while a
// Logout is running are ignored.
func (s *Session) Expire(ctx context.Context, reason string) {
	if s.loggingOut.Load() {
		return
	}
	user := s.CurrentUser()
	s.clearLocal(ctx)
	s.nav.Navigate(ctx, domain.RouteLogin, true)
	// A rejected login is not a lost session.
	if user == nil {
		return
	}
	metrics.ForcedLogoutsTotal.Inc()
	s.record(ctx, eventFor(domain.EventForcedLogout, user, reason))
}

func (s *Session) clearLocal(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("clearing stored session failed")
	}
	if err := s.store.ClearShop(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clearing shop context failed")
	}
	s.users.publish(nil)
}

// ChangePassword updates the password and lifts the forced-change flags.
func (s *Session) ChangePassword(ctx context.Context, req domain.PasswordChange) error {
	if err := Validate(req); err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return err
	}
	if err := s.auth.ChangePassword(ctx, req); err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return err
	}
	if err := s.store.ClearPasswordFlags(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clearing password flags failed")
	}
	s.show(ctx, domain.LevelSuccess, "Password changed successfully.")
	s.record(ctx, eventFor(domain.EventPasswordSet, s.CurrentUser(), ""))
	return nil
}

// PasswordStatus asks the backend whether the password must be changed.
func (s *Session) PasswordStatus(ctx context.Context) (*domain.PasswordStatus, error) {
	st, err := s.auth.PasswordStatus(ctx)
	if err != nil {
		s.fail(ctx, err, domain.AuthMessages)
		return nil, err
	}
	return st, nil
}

func (s *Session) PasswordChangeRequired(ctx context.Context) bool {
	return s.store.PasswordChangeRequired(ctx)
}

func (s *Session) TemporaryPassword(ctx context.Context) bool {
	return s.store.TemporaryPassword(ctx)
}

// ShopID returns the shop cached for this session.
func (s *Session) ShopID(ctx context.Context) (int64, bool) {
	return s.store.ShopID(ctx)
}

func (s *Session) HasRole(role domain.Role) bool {
	u := s.CurrentUser()
	return u != nil && u.Role == role
}

func (s *Session) HasAnyRole(roles ...domain.Role) bool {
	u := s.CurrentUser()
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (s *Session) IsSuperAdmin() bool { return s.HasAnyRole(domain.RoleSuperAdmin) }
func (s *Session) IsAdmin() bool      { return s.HasAnyRole(domain.RoleAdmin) }
func (s *Session) IsShopOwner() bool  { return s.HasAnyRole(domain.RoleShopOwner) }

func (s *Session) CanManageShops() bool {
	return s.HasAnyRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleShopOwner)
}

// LandingRoute is where the current user goes after login.
func (s *Session) LandingRoute() string {
	u := s.CurrentUser()
	if u == nil {
		return domain.RouteLogin
	}
	return u.Role.Profile().DefaultRoute
}

// Menu is the navigation of the current user's role.
func (s *Session) Menu() []domain.MenuEntry {
	u := s.CurrentUser()
	if u == nil {
		return nil
	}
	return u.Role.Profile().Menu
}

func (s *Session) fail(ctx context.Context, err error, d domain.MessageDefaults) {
	s.notify.Notify(ctx, domain.Notification{
		Level:    domain.LevelError,
		Message:  domain.DisplayMessage(err, d),
		Duration: domain.DefaultNotificationDuration,
	})
}

func (s *Session) show(ctx context.Context, level domain.Level, msg string) {
	s.notify.Notify(ctx, domain.Notification{Level: level, Message: msg, Duration: domain.DefaultNotificationDuration})
}

func (s *Session) record(ctx context.Context, e domain.SessionEvent) {
	e.Scope = s.scope
	if e.At.IsZero() {
		e.At = s.now().UTC()
	}
	s.events.Record(ctx, e)
}

func eventFor(t domain.SessionEventType, u *domain.User, reason string) domain.SessionEvent {
	e := domain.SessionEvent{Type: t, Reason: reason}
	if u != nil {
		e.Username = u.Username
		e.Role = u.Role.String()
	}
	return e
}

// discard is the null Notifier, Navigator and SessionEventRecorder.
type discard struct{}

func (discard) Notify(context.Context, domain.Notification) {}
func (discard) Navigate(context.Context, string, bool)      {}
func (discard) Record(context.Context, domain.SessionEvent) {}
