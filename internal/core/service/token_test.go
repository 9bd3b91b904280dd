package service

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
)

func TestTokenValid(t *testing.T) {
	noExp := "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"x"}`)) + ".sig"

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"expired", signedToken(t, fixedNow.Add(-time.Minute)), false},
		{"future", signedToken(t, fixedNow.Add(time.Hour)), true},
		{"not a jwt", "not-a-token", false},
		{"garbage segments", "a.b.c", false},
		{"empty", "", false},
		{"missing exp", noExp, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TokenValid(tc.token, fixedNow); got != tc.want {
				t.Fatalf("TokenValid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTokenExpiry_Malformed(t *testing.T) {
	if _, err := TokenExpiry("abc"); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestTokenStore_SetPersistsPasswordFlags(t *testing.T) {
	st := newMapStorage()
	store := NewTokenStore(st, zerolog.Nop())
	ctx := context.Background()

	user := domain.User{Username: "olga", Role: domain.RoleShopOwner}
	if err := store.Set(ctx, "tok", user, domain.PasswordFlags{Temporary: true}); err != nil {
		t.Fatalf("set: %v", err)
	}

	vals := st.snapshot()
	if vals[KeyToken] != "tok" {
		t.Fatalf("token not stored: %v", vals)
	}
	if vals[KeyPasswordChangeRequired] != "true" || vals[KeyTemporaryPassword] != "true" {
		t.Fatalf("password flags not stored: %v", vals)
	}
	got, ok := store.User(ctx)
	if !ok || got.Role != domain.RoleShopOwner || got.Username != "olga" {
		t.Fatalf("unexpected stored user: %+v", got)
	}
}

func TestTokenStore_NoFlagsWhenBackendSetsNone(t *testing.T) {
	st := newMapStorage()
	store := NewTokenStore(st, zerolog.Nop())
	if err := store.Set(context.Background(), "tok", domain.User{Username: "a"}, domain.PasswordFlags{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := st.snapshot()[KeyPasswordChangeRequired]; ok {
		t.Fatalf("flag should not be written")
	}
}

func TestTokenStore_ClearIsIdempotent(t *testing.T) {
	st := newMapStorage()
	store := NewTokenStore(st, zerolog.Nop())
	ctx := context.Background()
	_ = st.Set(ctx, "pwa_installed", "true")
	_ = store.Set(ctx, "tok", domain.User{Username: "a"}, domain.PasswordFlags{ChangeRequired: true})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	once := st.snapshot()
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	twice := st.snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("clear not idempotent: %v vs %v", once, twice)
	}
	if !reflect.DeepEqual(twice, map[string]string{"pwa_installed": "true"}) {
		t.Fatalf("clear touched unrelated keys or left session keys: %v", twice)
	}
}

func TestTokenStore_WithoutStorage(t *testing.T) {
	store := NewTokenStore(nil, zerolog.Nop())
	ctx := context.Background()
	if err := store.Set(ctx, "tok", domain.User{}, domain.PasswordFlags{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := store.Token(ctx); ok {
		t.Fatalf("expected no token without storage")
	}
}
