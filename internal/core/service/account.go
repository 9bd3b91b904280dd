package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

// Account drives the flows that happen before a session exists: OTP
// verification after registration and the forgot-password sequence.
type Account struct {
	auth     ports.AuthClient
	cooldown ports.Cooldown
	notify   ports.Notifier
	nav      ports.Navigator
	log      zerolog.Logger
}

func NewAccount(auth ports.AuthClient, cooldown ports.Cooldown, notify ports.Notifier, nav ports.Navigator, log zerolog.Logger) *Account {
	if notify == nil {
		notify = discard{}
	}
	if nav == nil {
		nav = discard{}
	}
	return &Account{auth: auth, cooldown: cooldown, notify: notify, nav: nav, log: log}
}

// VerifyOTP confirms the code sent at registration. The caller logs in
// afterwards; no session is stored here.
func (a *Account) VerifyOTP(ctx context.Context, req domain.OTPVerification) (*domain.AuthResponse, error) {
	if err := Validate(req); err != nil {
		a.fail(ctx, err, "OTP verification failed. Please try again.")
		return nil, err
	}
	resp, err := a.auth.VerifyOTP(ctx, req)
	if err != nil {
		a.fail(ctx, err, "OTP verification failed. Please try again.")
		return nil, err
	}
	a.show(ctx, domain.LevelSuccess, "Email verified successfully! You can now login.")
	a.nav.Navigate(ctx, domain.RouteLogin, false)
	return resp, nil
}

// ResendOTP sends a new registration code unless one went out recently.
func (a *Account) ResendOTP(ctx context.Context, req domain.OTPResend) error {
	if err := Validate(req); err != nil {
		a.fail(ctx, err, "Failed to resend OTP. Please try again.")
		return err
	}
	return a.gated(ctx, "otp:"+req.Identifier(), "Failed to resend OTP. Please try again.", "OTP sent successfully!", func() error {
		return a.auth.ResendOTP(ctx, req)
	})
}

// SendPasswordResetOTP starts the forgot-password flow for an email or
// mobile number.
func (a *Account) SendPasswordResetOTP(ctx context.Context, identifier string) error {
	if identifier == "" {
		err := &domain.ValidationError{Fields: map[string]string{"identifier": "Email or mobile number is required"}}
		a.fail(ctx, err, "")
		return err
	}
	return a.gated(ctx, "reset:"+identifier, "Failed to send OTP. Please try again.", "OTP has been sent successfully", func() error {
		return a.auth.SendPasswordResetOTP(ctx, identifier)
	})
}

func (a *Account) ResendPasswordResetOTP(ctx context.Context, identifier string) error {
	if identifier == "" {
		err := &domain.ValidationError{Fields: map[string]string{"identifier": "Email or mobile number is required"}}
		a.fail(ctx, err, "")
		return err
	}
	return a.gated(ctx, "reset:"+identifier, "Failed to resend OTP. Please try again.", "OTP sent successfully!", func() error {
		return a.auth.ResendPasswordResetOTP(ctx, identifier)
	})
}

func (a *Account) VerifyPasswordResetOTP(ctx context.Context, identifier, otp string) error {
	fields := map[string]string{}
	if identifier == "" {
		fields["identifier"] = "Email or mobile number is required"
	}
	if otp == "" {
		fields["otp"] = "OTP is required"
	}
	if len(fields) > 0 {
		err := &domain.ValidationError{Fields: fields}
		a.fail(ctx, err, "")
		return err
	}
	if err := a.auth.VerifyPasswordResetOTP(ctx, identifier, otp); err != nil {
		a.fail(ctx, err, "Invalid or expired OTP")
		return err
	}
	a.show(ctx, domain.LevelSuccess, "OTP verified successfully")
	return nil
}

// ResetPassword completes the forgot-password flow and sends the user back
// to the login screen.
func (a *Account) ResetPassword(ctx context.Context, req domain.PasswordReset) error {
	if err := Validate(req); err != nil {
		a.fail(ctx, err, "")
		return err
	}
	if err := a.auth.ResetPassword(ctx, req); err != nil {
		a.fail(ctx, err, "Failed to reset password. Please try again.")
		return err
	}
	a.show(ctx, domain.LevelSuccess, "Password reset successfully. Please login with your new password.")
	a.nav.Navigate(ctx, domain.RouteLogin, true)
	return nil
}

// gated reserves the cooldown for key before running send, so concurrent
// requests cannot both get through. A failed send releases the window again.
// Cooldown store failures never block a send.
func (a *Account) gated(ctx context.Context, key, failMsg, okMsg string, send func() error) error {
	reserved := false
	if a.cooldown != nil {
		remaining, err := a.cooldown.Reserve(ctx, key)
		switch {
		case err != nil:
			a.log.Warn().Err(err).Str("key", key).Msg("cooldown reserve failed, sending anyway")
		case remaining > 0:
			cerr := &domain.CooldownError{Remaining: remaining}
			a.notify.Notify(ctx, domain.Notification{Level: domain.LevelWarning, Message: cerr.Error(), Duration: domain.DefaultNotificationDuration})
			return cerr
		default:
			reserved = true
		}
	}
	if err := send(); err != nil {
		if reserved {
			if rerr := a.cooldown.Release(ctx, key); rerr != nil {
				a.log.Warn().Err(rerr).Str("key", key).Msg("failed to release resend cooldown")
			}
		}
		a.fail(ctx, err, failMsg)
		return err
	}
	a.show(ctx, domain.LevelSuccess, okMsg)
	return nil
}

func (a *Account) fail(ctx context.Context, err error, fallback string) {
	d := domain.AuthMessages
	if fallback != "" {
		d = domain.MessageDefaults{ByStatus: domain.AuthMessages.ByStatus, Fallback: fallback}
	}
	a.notify.Notify(ctx, domain.Notification{
		Level:    domain.LevelError,
		Message:  domain.DisplayMessage(err, d),
		Duration: domain.DefaultNotificationDuration,
	})
}

func (a *Account) show(ctx context.Context, level domain.Level, msg string) {
	a.notify.Notify(ctx, domain.Notification{Level: level, Message: msg, Duration: domain.DefaultNotificationDuration})
}
