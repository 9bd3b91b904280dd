package ports

import (
	"context"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// AccountRepository stores backend accounts.
type AccountRepository interface {
	// Create assigns the ID and returns the stored account. Duplicate
	// usernames or emails yield domain.ErrUserExists.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByIdentifier looks an account up by username, email or mobile
	// number; domain.ErrUserNotFound when none matches.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}
