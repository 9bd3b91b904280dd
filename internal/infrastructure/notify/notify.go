// Package notify delivers user notifications: to the log, to a terminal,
// or into a session's flash queue for the browser to pick up.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/metrics"
)

// Log writes notifications to a zerolog logger.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log { return &Log{log: log} }

func (l *Log) Notify(_ context.Context, n domain.Notification) {
	ev := l.log.Info()
	switch n.Level {
	case domain.LevelWarning:
		ev = l.log.Warn()
	case domain.LevelError:
		ev = l.log.Error()
	}
	ev.Str("notification", string(n.Level)).Msg(n.Message)
}

// Console prints notifications for a terminal user.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console { return &Console{out: out} }

var consolePrefix = map[domain.Level]string{
	domain.LevelSuccess: "✔",
	domain.LevelInfo:    "i",
	domain.LevelWarning: "!",
	domain.LevelError:   "✖",
}

func (c *Console) Notify(_ context.Context, n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, "%s %s\n", consolePrefix[n.Level], n.Message)
}

// Multi fans a notification out to every notifier and counts it once.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notification) {
	metrics.NotificationsTotal.WithLabelValues(string(n.Level)).Inc()
	for _, nt := range m {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}
