package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/devbackend"
	"github.com/shopmanagement/portal/internal/infrastructure/backend"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
)

type browser struct {
	t      *testing.T
	portal *httptest.Server
	client *http.Client
}

func newPortal(t *testing.T) *browser {
	t.Helper()
	svc := devbackend.NewService(devbackend.NewMemoryAccounts(), "secret", devbackend.Options{Log: zerolog.Nop()})
	if err := devbackend.SeedDemo(context.Background(), svc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	api := httptest.NewServer(devbackend.NewRouter(svc, zerolog.Nop()))
	t.Cleanup(api.Close)

	a := app.New(app.Options{
		Base: backend.NewClient(api.URL+"/api", api.Client(), zerolog.Nop()),
		Log:  zerolog.Nop(),
	})
	e := NewRouter(RouterConfig{
		App:        a,
		Sessions:   storage.NewMemoryProvider(time.Hour),
		SessionTTL: time.Hour,
		Log:        zerolog.Nop(),
		Registry:   prometheus.NewRegistry(),
	})
	e.Logger.SetOutput(io.Discard)
	portal := httptest.NewServer(e)
	t.Cleanup(portal.Close)

	jar, _ := cookiejar.New(nil)
	return &browser{
		t:      t,
		portal: portal,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(method, path, body string, out any) *http.Response {
	b.t.Helper()
	req, err := http.NewRequest(method, b.portal.URL+path, strings.NewReader(body))
	if err != nil {
		b.t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			b.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return res
}

func (b *browser) login(username, password string) (*http.Response, map[string]any) {
	var body map[string]any
	res := b.do(http.MethodPost, "/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, &body)
	return res, body
}

func expectRedirect(t *testing.T, res *http.Response, want string) {
	t.Helper()
	if res.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != want {
		t.Fatalf("expected redirect to %q, got %q", want, loc)
	}
}

func TestPortal_AdminJourney(t *testing.T) {
	b := newPortal(t)

	expectRedirect(t, b.do(http.MethodGet, "/dashboard", "", nil), "/auth/login?returnUrl=%2Fdashboard")

	res, body := b.login("admin", devbackend.DemoPassword)
	if res.StatusCode != http.StatusOK || body["redirect"] != "/dashboard" {
		t.Fatalf("unexpected login %d %+v", res.StatusCode, body)
	}

	var page struct {
		Path string             `json:"path"`
		Menu []domain.MenuEntry `json:"menu"`
	}
	if res := b.do(http.MethodGet, "/admin/shops", "", &page); res.StatusCode != http.StatusOK || len(page.Menu) == 0 {
		t.Fatalf("unexpected admin page %d %+v", res.StatusCode, page)
	}
	expectRedirect(t, b.do(http.MethodGet, "/shop-owner/dashboard", "", nil), "/dashboard")

	var notes []domain.Notification
	b.do(http.MethodGet, "/notifications", "", &notes)
	if len(notes) == 0 || notes[len(notes)-1].Message != "Welcome back! Login successful." {
		t.Fatalf("unexpected notifications %+v", notes)
	}

	var out map[string]any
	b.do(http.MethodPost, "/auth/logout", "", &out)
	if out["redirect"] != domain.RouteLogin {
		t.Fatalf("unexpected logout %+v", out)
	}
	expectRedirect(t, b.do(http.MethodGet, "/dashboard", "", nil), "/auth/login?returnUrl=%2Fdashboard")
}

func TestPortal_BadLogin(t *testing.T) {
	b := newPortal(t)

	res, body := b.login("admin", "wrong")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if body["error"] != "Invalid username or password" {
		t.Fatalf("unexpected error body %+v", body)
	}

	res, body = b.login("", "")
	fields, _ := body["fields"].(map[string]any)
	if res.StatusCode != http.StatusBadRequest || fields["username"] == nil || fields["password"] == nil {
		t.Fatalf("expected field errors, got %d %+v", res.StatusCode, body)
	}
}

func TestPortal_ForcedPasswordChange(t *testing.T) {
	b := newPortal(t)

	_, body := b.login("temp", devbackend.DemoPassword)
	if body["redirect"] != domain.RouteChangePassword {
		t.Fatalf("expected change-password redirect, got %+v", body)
	}
	expectRedirect(t, b.do(http.MethodGet, "/customer/shops", "", nil), domain.RouteChangePassword)

	change := `{"currentPassword":"` + devbackend.DemoPassword + `","newPassword":"brand-new","confirmPassword":"brand-new"}`
	if res := b.do(http.MethodPost, "/auth/change-password", change, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("change password failed: %d", res.StatusCode)
	}
	if res := b.do(http.MethodGet, "/customer/shops", "", nil); res.StatusCode != http.StatusOK {
		t.Fatalf("expected page after change, got %d", res.StatusCode)
	}
}

func TestPortal_ShopOwnerBulkAssign(t *testing.T) {
	b := newPortal(t)
	b.login("shopowner", devbackend.DemoPassword)

	// The shop is resolved in the background after login.
	deadline := time.Now().Add(5 * time.Second)
	for {
		var me struct {
			ShopID int64 `json:"shopId"`
		}
		b.do(http.MethodGet, "/auth/me", "", &me)
		if me.ShopID != 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("shop never cached")
		}
		time.Sleep(20 * time.Millisecond)
	}

	var out struct {
		Succeeded []domain.ShopProduct       `json:"succeeded"`
		Failed    []domain.AssignmentFailure `json:"failed"`
	}
	body := `{"items":[{"masterProductId":1,"price":5,"stockQuantity":2},{"masterProductId":99,"price":3}]}`
	res := b.do(http.MethodPost, "/shop-owner/products/bulk-assign", body, &out)
	if res.StatusCode != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", res.StatusCode)
	}
	if len(out.Succeeded) != 1 || len(out.Failed) != 1 || out.Failed[0].MasterProductID != 99 {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestPortal_ResendCooldown(t *testing.T) {
	b := newPortal(t)

	if res := b.do(http.MethodPost, "/auth/resend-otp", `{"email":"user@shop.local"}`, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("first resend: %d", res.StatusCode)
	}
	var body map[string]any
	res := b.do(http.MethodPost, "/auth/resend-otp", `{"email":"user@shop.local"}`, &body)
	if res.StatusCode != http.StatusTooManyRequests || res.Header.Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", res.StatusCode)
	}
	if body["retryAfter"] == nil {
		t.Fatalf("missing retryAfter in %+v", body)
	}
}

func TestPortal_PublicEndpoints(t *testing.T) {
	b := newPortal(t)

	for path, want := range map[string]int{
		"/health":       http.StatusOK,
		"/health/ready": http.StatusOK,
		"/metrics":      http.StatusOK,
		"/unauthorized": http.StatusForbidden,
	} {
		if res := b.do(http.MethodGet, path, "", nil); res.StatusCode != want {
			t.Errorf("GET %s: expected %d, got %d", path, want, res.StatusCode)
		}
	}
}

func TestPortal_EveryMenuEntryIsReachable(t *testing.T) {
	b := newPortal(t)

	for _, role := range domain.Roles() {
		username := strings.ToLower(strings.ReplaceAll(role.String(), "_", ""))
		if res, body := b.login(username, devbackend.DemoPassword); res.StatusCode != http.StatusOK {
			t.Fatalf("login as %s: %d %+v", username, res.StatusCode, body)
		}

		var menu struct {
			Landing string             `json:"landing"`
			Menu    []domain.MenuEntry `json:"menu"`
		}
		b.do(http.MethodGet, "/menu", "", &menu)
		if len(menu.Menu) == 0 {
			t.Errorf("%s: empty menu", role)
			continue
		}
		for _, entry := range append([]domain.MenuEntry{{Route: menu.Landing}}, menu.Menu...) {
			res := b.do(http.MethodGet, entry.Route, "", nil)
			if res.StatusCode != http.StatusOK {
				t.Errorf("%s: %s -> %d %s", role, entry.Route, res.StatusCode, res.Header.Get("Location"))
			}
		}
	}
}
