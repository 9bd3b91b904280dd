package ports

import (
	"context"
	"time"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Navigator moves the client to another route. Replace drops the current
// entry from history.
type Navigator interface {
	Navigate(ctx context.Context, route string, replace bool)
}

// Cooldown gates repeated actions per key for a fixed window.
type Cooldown interface {
	// Reserve opens a window for key in one step. It returns zero when the
	// caller got the window, otherwise how long the running one still lasts.
	Reserve(ctx context.Context, key string) (time.Duration, error)
	// Release drops the window for key.
	Release(ctx context.Context, key string) error
}
