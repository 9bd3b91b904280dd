package devbackend

import (
	"context"
	"strings"
	"sync"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

// MemoryAccounts is the default account store of the development backend.
type MemoryAccounts struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{accounts: make(map[int64]*domain.Account)}
}

var _ ports.AccountRepository = (*MemoryAccounts)(nil)

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *MemoryAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Username == account.Username || strings.EqualFold(a.Email, account.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneAccount(account)
	stored.ID = r.nextID
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *MemoryAccounts) FindByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Matches(identifier) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryAccounts) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.accounts[account.ID] = cloneAccount(account)
	return nil
}
