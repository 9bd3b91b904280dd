package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

// Storage keys shared with the web client.
const (
	KeyToken                  = "shop_management_token"
	KeyUser                   = "shop_management_user"
	KeyPasswordChangeRequired = "passwordChangeRequired"
	KeyTemporaryPassword      = "isTemporaryPassword"
	KeyCurrentShopID          = "current_shop_id"
	KeyShopName               = "shop_name"
)

// TokenStore persists the bearer token and the session user in a Storage
// scope. Read failures are logged and reported as absence.
type TokenStore struct {
	storage ports.Storage
	log     zerolog.Logger
}

// NewTokenStore wraps s; a nil s behaves like an environment without storage.
func NewTokenStore(s ports.Storage, log zerolog.Logger) *TokenStore {
	if s == nil {
		s = noStorage{}
	}
	return &TokenStore{storage: s, log: log}
}

func (t *TokenStore) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := t.storage.Get(ctx, key)
	if err != nil {
		t.log.Warn().Err(err).Str("key", key).Msg("storage read failed")
		return "", false
	}
	return v, ok
}

// Token returns the stored bearer token.
func (t *TokenStore) Token(ctx context.Context) (string, bool) {
	v, ok := t.get(ctx, KeyToken)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// User returns the stored session user.
func (t *TokenStore) User(ctx context.Context) (*domain.User, bool) {
	raw, ok := t.get(ctx, KeyUser)
	if !ok {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.log.Warn().Err(err).Msg("stored user record is corrupt")
		return nil, false
	}
	return &u, true
}

// Set persists token and user, plus the password flags when either is set.
func (t *TokenStore) Set(ctx context.Context, token string, user domain.User, flags domain.PasswordFlags) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := t.storage.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := t.storage.Set(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	if flags.Any() {
		if err := t.storage.Set(ctx, KeyPasswordChangeRequired, "true"); err != nil {
			return err
		}
		if err := t.storage.Set(ctx, KeyTemporaryPassword, strconv.FormatBool(flags.Temporary)); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes the token, the user and both password flags.
func (t *TokenStore) Clear(ctx context.Context) error {
	return t.storage.Delete(ctx, KeyToken, KeyUser, KeyPasswordChangeRequired, KeyTemporaryPassword)
}

func (t *TokenStore) PasswordChangeRequired(ctx context.Context) bool {
	v, _ := t.get(ctx, KeyPasswordChangeRequired)
	return v == "true"
}

func (t *TokenStore) TemporaryPassword(ctx context.Context) bool {
	v, _ := t.get(ctx, KeyTemporaryPassword)
	return v == "true"
}

func (t *TokenStore) ClearPasswordFlags(ctx context.Context) error {
	return t.storage.Delete(ctx, KeyPasswordChangeRequired, KeyTemporaryPassword)
}

// SetShop caches the shop the session operates on.
func (t *TokenStore) SetShop(ctx context.Context, shop domain.Shop) error {
	if err := t.storage.Set(ctx, KeyCurrentShopID, strconv.FormatInt(shop.ID, 10)); err != nil {
		return err
	}
	if name := shop.DisplayName(); name != "" {
		return t.storage.Set(ctx, KeyShopName, name)
	}
	return nil
}

// ShopID returns the cached shop id.
func (t *TokenStore) ShopID(ctx context.Context) (int64, bool) {
	v, ok := t.get(ctx, KeyCurrentShopID)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (t *TokenStore) ClearShop(ctx context.Context) error {
	return t.storage.Delete(ctx, KeyCurrentShopID, KeyShopName)
}

// noStorage stands in when the process has no persistent storage at all.
type noStorage struct{}

func (noStorage) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (noStorage) Set(context.Context, string, string) error         { return nil }
func (noStorage) Delete(context.Context, ...string) error           { return nil }
