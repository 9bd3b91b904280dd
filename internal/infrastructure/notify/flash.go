package notify

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

// KeyFlash holds the pending notifications of a session scope.
const KeyFlash = "portal_notifications"

// maxFlash bounds the queue; the oldest entries go first.
const maxFlash = 20

// Flash queues notifications in the session's Storage until the browser
// drains them.
type Flash struct {
	storage ports.Storage
	log     zerolog.Logger
}

func NewFlash(s ports.Storage, log zerolog.Logger) *Flash {
	return &Flash{storage: s, log: log}
}

func (f *Flash) Notify(ctx context.Context, n domain.Notification) {
	pending := f.read(ctx)
	pending = append(pending, n)
	if len(pending) > maxFlash {
		pending = pending[len(pending)-maxFlash:]
	}
	raw, err := json.Marshal(pending)
	if err != nil {
		f.log.Warn().Err(err).Msg("encode flash notifications")
		return
	}
	if err := f.storage.Set(ctx, KeyFlash, string(raw)); err != nil {
		f.log.Warn().Err(err).Msg("store flash notification")
	}
}

// Drain returns the pending notifications, oldest first, and empties the
// queue.
func (f *Flash) Drain(ctx context.Context) []domain.Notification {
	pending := f.read(ctx)
	if len(pending) == 0 {
		return []domain.Notification{}
	}
	if err := f.storage.Delete(ctx, KeyFlash); err != nil {
		f.log.Warn().Err(err).Msg("clear flash notifications")
	}
	return pending
}

func (f *Flash) read(ctx context.Context) []domain.Notification {
	raw, ok, err := f.storage.Get(ctx, KeyFlash)
	if err != nil {
		f.log.Warn().Err(err).Msg("read flash notifications")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var pending []domain.Notification
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		f.log.Warn().Err(err).Msg("corrupt flash notifications, discarding")
		return nil
	}
	return pending
}
