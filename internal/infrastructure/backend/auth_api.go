package backend

import (
	"context"
	"net/http"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// AuthAPI implements ports.AuthClient against the /auth endpoints.
type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

func (a *AuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, a.c, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, a.c, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) VerifyOTP(ctx context.Context, req domain.OTPVerification) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, a.c, http.MethodPost, "/auth/verify-otp", req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) ResendOTP(ctx context.Context, req domain.OTPResend) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/resend-otp", req)
	return err
}

type identifierBody struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp,omitempty"`
}

func (a *AuthAPI) SendPasswordResetOTP(ctx context.Context, identifier string) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/forgot-password/send-otp", identifierBody{Identifier: identifier})
	return err
}

func (a *AuthAPI) VerifyPasswordResetOTP(ctx context.Context, identifier, otp string) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/forgot-password/verify-otp", identifierBody{Identifier: identifier, OTP: otp})
	return err
}

func (a *AuthAPI) ResetPassword(ctx context.Context, req domain.PasswordReset) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/forgot-password/reset-password", req)
	return err
}

func (a *AuthAPI) ResendPasswordResetOTP(ctx context.Context, identifier string) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/forgot-password/resend-otp", identifierBody{Identifier: identifier})
	return err
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/logout", struct{}{})
	return err
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req domain.PasswordChange) error {
	_, err := call[empty](ctx, a.c, http.MethodPost, "/auth/change-password", req)
	return err
}

func (a *AuthAPI) PasswordStatus(ctx context.Context) (*domain.PasswordStatus, error) {
	st, err := call[domain.PasswordStatus](ctx, a.c, http.MethodGet, "/auth/password-status", nil)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
