package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type mapStorage struct {
	mu     sync.Mutex
	values map[string]string
	// failSet makes Set fail for this key.
	failSet string
}

func newMapStorage() *mapStorage {
	return &mapStorage{values: make(map[string]string)}
}

func (m *mapStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == m.failSet {
		return domain.ErrStorageUnavailable
	}
	m.values[key] = value
	return nil
}

func (m *mapStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *mapStorage) snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

type stubAuth struct {
	loginResp   *domain.AuthResponse
	loginErr    error
	logoutErr   error
	changeErr   error
	resendErr   error
	logoutCalls int
	loginCalls  int
	resendCalls int
	onLogin     func()
}

func (a *stubAuth) Login(_ context.Context, _ domain.Credentials) (*domain.AuthResponse, error) {
	a.loginCalls++
	if a.onLogin != nil {
		a.onLogin()
	}
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	resp := *a.loginResp
	return &resp, nil
}

func (a *stubAuth) Register(_ context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{Username: req.Username, Email: req.Email, Role: "USER"}, nil
}

func (a *stubAuth) VerifyOTP(_ context.Context, req domain.OTPVerification) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{Email: req.Email}, nil
}

func (a *stubAuth) ResendOTP(context.Context, domain.OTPResend) error {
	a.resendCalls++
	return a.resendErr
}

func (a *stubAuth) SendPasswordResetOTP(context.Context, string) error { return nil }

func (a *stubAuth) VerifyPasswordResetOTP(context.Context, string, string) error { return nil }

func (a *stubAuth) ResetPassword(context.Context, domain.PasswordReset) error { return nil }

func (a *stubAuth) ResendPasswordResetOTP(context.Context, string) error {
	a.resendCalls++
	return a.resendErr
}

func (a *stubAuth) Logout(context.Context) error {
	a.logoutCalls++
	return a.logoutErr
}

func (a *stubAuth) ChangePassword(context.Context, domain.PasswordChange) error { return a.changeErr }

func (a *stubAuth) PasswordStatus(context.Context) (*domain.PasswordStatus, error) {
	return &domain.PasswordStatus{}, nil
}

type stubShops struct {
	mu       sync.Mutex
	shop     *domain.Shop
	err      error
	lookups  []string
	failFor  map[int64]error
	assigned []int64
}

func (s *stubShops) MyShop(_ context.Context, username string) (*domain.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, username)
	if s.err != nil {
		return nil, s.err
	}
	shop := *s.shop
	return &shop, nil
}

func (s *stubShops) AddProductToShop(_ context.Context, shopID int64, req domain.ShopProductRequest) (*domain.ShopProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[req.MasterProductID]; err != nil {
		return nil, err
	}
	s.assigned = append(s.assigned, req.MasterProductID)
	return &domain.ShopProduct{ShopID: shopID, MasterProductID: req.MasterProductID, Price: req.Price}, nil
}

type recorder struct {
	mu            sync.Mutex
	notifications []domain.Notification
	routes        []string
	events        []domain.SessionEvent
}

func (r *recorder) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recorder) Navigate(_ context.Context, route string, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) Record(_ context.Context, e domain.SessionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) levels() []domain.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Level, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, n.Level)
	}
	return out
}

type stubCooldown struct {
	mu        sync.Mutex
	remaining time.Duration
	held      map[string]bool
	reserved  []string
	released  []string
}

func (c *stubCooldown) Reserve(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		return c.remaining, nil
	}
	if c.held[key] {
		return time.Minute, nil
	}
	if c.held == nil {
		c.held = map[string]bool{}
	}
	c.held[key] = true
	c.reserved = append(c.reserved, key)
	return 0, nil
}

func (c *stubCooldown) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.held, key)
	c.released = append(c.released, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "someone",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

var errBackendDown = errors.New("dial tcp: connection refused")
