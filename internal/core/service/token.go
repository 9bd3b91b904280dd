package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopmanagement/portal/internal/core/domain"
)

var tokenParser = jwt.NewParser()

// TokenExpiry decodes the exp claim of a bearer token without verifying its
// signature. The backend remains the only judge of authenticity.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := tokenParser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", domain.ErrMalformedToken)
	}
	return exp.Time, nil
}

// TokenValid reports whether token is well formed and expires after now.
func TokenValid(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return exp.After(now)
}
