package ports

import (
	"context"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// SessionEventRecorder receives session transitions. Implementations must not
// block the caller for long; failures are the recorder's concern.
type SessionEventRecorder interface {
	Record(ctx context.Context, event domain.SessionEvent)
}

// SessionEventRepository persists session events.
type SessionEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.SessionEvent) error
}
