package domain

import "time"

// User is the session projection of the logged-in account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credentials are sent once to the login endpoint and never stored.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by a successful login, registration or OTP check.
type AuthResponse struct {
	AccessToken            string `json:"accessToken"`
	TokenType              string `json:"tokenType,omitempty"`
	Username               string `json:"username"`
	Email                  string `json:"email,omitempty"`
	Role                   string `json:"role"`
	UserID                 int64  `json:"userId,omitempty"`
	PasswordChangeRequired bool   `json:"passwordChangeRequired,omitempty"`
	IsTemporaryPassword    bool   `json:"isTemporaryPassword,omitempty"`
}

// User projects the response into the session user.
func (a AuthResponse) User(now time.Time) User {
	return User{
		ID:        a.UserID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      ParseRole(a.Role),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PasswordFlags returns the forced-change flags carried by the response.
func (a AuthResponse) PasswordFlags() PasswordFlags {
	return PasswordFlags{
		ChangeRequired: a.PasswordChangeRequired,
		Temporary:      a.IsTemporaryPassword,
	}
}

type PasswordFlags struct {
	ChangeRequired bool
	Temporary      bool
}

// Any reports whether the backend asked for a password change in any form.
func (f PasswordFlags) Any() bool { return f.ChangeRequired || f.Temporary }

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
	Role         string `json:"role,omitempty"`
}

type OTPVerification struct {
	Email        string `json:"email,omitempty" validate:"required_without=MobileNumber"`
	MobileNumber string `json:"mobileNumber,omitempty" validate:"required_without=Email"`
	OTP          string `json:"otp" validate:"required,numeric,len=6"`
	Purpose      string `json:"purpose,omitempty"`
}

type OTPResend struct {
	Email        string `json:"email,omitempty" validate:"required_without=MobileNumber"`
	MobileNumber string `json:"mobileNumber,omitempty" validate:"required_without=Email"`
}

// Identifier is the key the resend cooldown is tracked under.
func (r OTPResend) Identifier() string {
	if r.MobileNumber != "" {
		return r.MobileNumber
	}
	return r.Email
}

type PasswordReset struct {
	Identifier      string `json:"identifier" validate:"required"`
	OTP             string `json:"otp" validate:"required,numeric,len=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type PasswordStatus struct {
	IsTemporaryPassword    bool       `json:"isTemporaryPassword"`
	PasswordChangeRequired bool       `json:"passwordChangeRequired"`
	LastPasswordChange     *time.Time `json:"lastPasswordChange,omitempty"`
}
