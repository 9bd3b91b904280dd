package ports

import (
	"context"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// AuthClient is the REST surface of the backend /auth endpoints.
type AuthClient interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	VerifyOTP(ctx context.Context, req domain.OTPVerification) (*domain.AuthResponse, error)
	ResendOTP(ctx context.Context, req domain.OTPResend) error
	SendPasswordResetOTP(ctx context.Context, identifier string) error
	VerifyPasswordResetOTP(ctx context.Context, identifier, otp string) error
	ResetPassword(ctx context.Context, req domain.PasswordReset) error
	ResendPasswordResetOTP(ctx context.Context, identifier string) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, req domain.PasswordChange) error
	PasswordStatus(ctx context.Context) (*domain.PasswordStatus, error)
}

// ShopClient is the part of the shop API the session layer depends on.
type ShopClient interface {
	MyShop(ctx context.Context, username string) (*domain.Shop, error)
	AddProductToShop(ctx context.Context, shopID int64, req domain.ShopProductRequest) (*domain.ShopProduct, error)
}
