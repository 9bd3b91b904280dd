package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/infrastructure/backend"
	"github.com/shopmanagement/portal/internal/infrastructure/httpclient"
)

type staticToken struct{ token string }

func (s *staticToken) Token(context.Context) (string, bool) { return s.token, s.token != "" }
func (s *staticToken) IsAuthenticated(context.Context) bool { return s.token != "" }

type testBackend struct {
	svc   *Service
	srv   *httptest.Server
	token *staticToken
	auth  *backend.AuthAPI
	shops *backend.ShopAPI
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	svc := NewService(NewMemoryAccounts(), "secret", Options{Log: zerolog.Nop()})
	if err := SeedDemo(context.Background(), svc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := httptest.NewServer(NewRouter(svc, zerolog.Nop()))
	t.Cleanup(srv.Close)

	tok := &staticToken{}
	client := backend.NewClient(srv.URL+"/api", srv.Client(), zerolog.Nop(),
		httpclient.AuthHeader(tok, httpclient.ClientHeaders{}))
	return &testBackend{
		svc:   svc,
		srv:   srv,
		token: tok,
		auth:  backend.NewAuthAPI(client),
		shops: backend.NewShopAPI(client),
	}
}

func (b *testBackend) login(t *testing.T, username string) *domain.AuthResponse {
	t.Helper()
	resp, err := b.auth.Login(context.Background(), domain.Credentials{Username: username, Password: DemoPassword})
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	b.token.token = resp.AccessToken
	return resp
}

func asAPIError(t *testing.T, err error) *domain.APIError {
	t.Helper()
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	return apiErr
}

func TestServer_LoginAndPasswordStatus(t *testing.T) {
	b := newTestBackend(t)
	resp := b.login(t, "temp")
	if !resp.PasswordChangeRequired || resp.Role != "USER" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	st, err := b.auth.PasswordStatus(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.PasswordChangeRequired || !st.IsTemporaryPassword {
		t.Fatalf("unexpected status %+v", st)
	}

	err = b.auth.ChangePassword(context.Background(), domain.PasswordChange{
		CurrentPassword: DemoPassword, NewPassword: "fresh-pass", ConfirmPassword: "fresh-pass",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	st, _ = b.auth.PasswordStatus(context.Background())
	if st.PasswordChangeRequired || st.LastPasswordChange == nil {
		t.Fatalf("flags not cleared %+v", st)
	}
}

func TestServer_InvalidCredentials(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.auth.Login(context.Background(), domain.Credentials{Username: "admin", Password: "nope"})
	apiErr := asAPIError(t, err)
	if apiErr.Status != http.StatusUnauthorized || apiErr.Code != CodeInvalidCredentials {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected 401 to match ErrUnauthenticated")
	}
}

func TestServer_LogoutInvalidatesToken(t *testing.T) {
	b := newTestBackend(t)
	b.login(t, "admin")

	if err := b.auth.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err := b.auth.PasswordStatus(context.Background())
	apiErr := asAPIError(t, err)
	if apiErr.Status != http.StatusUnauthorized || apiErr.Code != domain.CodeTokenInvalidated {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestServer_RequiresBearerToken(t *testing.T) {
	b := newTestBackend(t)

	res, err := http.Get(b.srv.URL + "/api/auth/password-status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	var body apiResponse
	_ = json.NewDecoder(res.Body).Decode(&body)
	if res.StatusCode != http.StatusUnauthorized || body.StatusCode != CodeUnauthorized {
		t.Fatalf("unexpected answer %d %+v", res.StatusCode, body)
	}
}

func TestServer_RegisterValidation(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.auth.Register(context.Background(), domain.RegisterRequest{Username: "x", Email: "bad"})
	apiErr := asAPIError(t, err)
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != CodeValidation {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	for _, field := range []string{"username", "email", "password"} {
		if apiErr.ValidationErrors[field] == "" {
			t.Fatalf("missing validation error for %s: %+v", field, apiErr.ValidationErrors)
		}
	}
}

func TestServer_RegisterVerifyFlow(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	resp, err := b.auth.Register(ctx, domain.RegisterRequest{
		Username: "nina", Email: "nina@example.com", Password: "pass123", Role: "SHOP_OWNER",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken != "" || resp.Role != "SHOP_OWNER" {
		t.Fatalf("unexpected register response %+v", resp)
	}

	_, err = b.auth.Register(ctx, domain.RegisterRequest{Username: "nina", Email: "nina@example.com", Password: "pass123"})
	if apiErr := asAPIError(t, err); apiErr.Status != http.StatusConflict || apiErr.Code != CodeDuplicate {
		t.Fatalf("unexpected duplicate error %+v", apiErr)
	}

	if err := b.auth.ResendOTP(ctx, domain.OTPResend{Email: "nina@example.com"}); err != nil {
		t.Fatalf("resend: %v", err)
	}
	code := pendingOTP(t, b.svc, purposeRegistration, "nina@example.com")
	verified, err := b.auth.VerifyOTP(ctx, domain.OTPVerification{Email: "nina@example.com", OTP: code})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.AccessToken == "" {
		t.Fatalf("expected token after verification")
	}
}

func TestServer_ForgotPasswordFlow(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	if err := b.auth.SendPasswordResetOTP(ctx, "manager@shop.local"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := b.auth.ResendPasswordResetOTP(ctx, "manager@shop.local"); err != nil {
		t.Fatalf("resend: %v", err)
	}
	code := pendingOTP(t, b.svc, purposeReset, "manager@shop.local")

	err := b.auth.VerifyPasswordResetOTP(ctx, "manager@shop.local", strings.Repeat("9", 6))
	if code != "999999" {
		if apiErr := asAPIError(t, err); apiErr.Status != http.StatusBadRequest {
			t.Fatalf("unexpected error %+v", apiErr)
		}
	}
	if err := b.auth.VerifyPasswordResetOTP(ctx, "manager@shop.local", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	err = b.auth.ResetPassword(ctx, domain.PasswordReset{
		Identifier: "manager@shop.local", OTP: code, NewPassword: "reset-pass", ConfirmPassword: "reset-pass",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := b.auth.Login(ctx, domain.Credentials{Username: "manager", Password: "reset-pass"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestServer_ForgotPasswordAcceptsEmailField(t *testing.T) {
	b := newTestBackend(t)

	res, err := http.Post(b.srv.URL+"/api/auth/forgot-password/send-otp", "application/json",
		strings.NewReader(`{"email":"user@shop.local"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	pendingOTP(t, b.svc, purposeReset, "user@shop.local")
}

func TestServer_ShopEndpoints(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t, "shopowner")

	shop, err := b.shops.MyShop(ctx, "shopowner")
	if err != nil {
		t.Fatalf("my shop: %v", err)
	}
	if shop.Name != "Corner Store" {
		t.Fatalf("unexpected shop %+v", shop)
	}

	req := domain.ShopProductRequest{MasterProductID: 1, Price: 12.5, StockQuantity: 4, IsAvailable: true}
	item, err := b.shops.AddProductToShop(ctx, shop.ID, req)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if item.ShopID != shop.ID || item.MasterProductID != 1 {
		t.Fatalf("unexpected item %+v", item)
	}

	_, err = b.shops.AddProductToShop(ctx, shop.ID, req)
	if apiErr := asAPIError(t, err); apiErr.Status != http.StatusConflict {
		t.Fatalf("unexpected duplicate error %+v", apiErr)
	}

	b.login(t, "user")
	if _, err := b.shops.MyShop(ctx, "user"); !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
	_, err = b.shops.AddProductToShop(ctx, shop.ID, domain.ShopProductRequest{MasterProductID: 2, Price: 1})
	if apiErr := asAPIError(t, err); apiErr.Status != http.StatusForbidden {
		t.Fatalf("unexpected forbidden error %+v", apiErr)
	}
}
