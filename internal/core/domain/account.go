package domain

import (
	"strings"
	"time"
)

// Account is the backend-side record of a user, as kept by the development
// backend. It never leaves the backend; clients see User.
type Account struct {
	ID                     int64
	Username               string
	Email                  string
	MobileNumber           string
	PasswordHash           string
	Role                   Role
	Verified               bool
	PasswordChangeRequired bool
	TemporaryPassword      bool
	LastPasswordChange     *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Matches reports whether identifier names this account by username, email
// or mobile number.
func (a Account) Matches(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	return a.Username == identifier ||
		strings.EqualFold(a.Email, identifier) ||
		(a.MobileNumber != "" && a.MobileNumber == identifier)
}
