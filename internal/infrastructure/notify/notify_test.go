package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/infrastructure/storage"
)

func TestFlash_QueueAndDrain(t *testing.T) {
	ctx := context.Background()
	f := NewFlash(storage.NewMemory(), zerolog.Nop())

	if got := f.Drain(ctx); len(got) != 0 {
		t.Fatalf("expected empty queue, got %v", got)
	}
	f.Notify(ctx, domain.Notification{Level: domain.LevelSuccess, Message: "first"})
	f.Notify(ctx, domain.Notification{Level: domain.LevelError, Message: "second"})

	got := f.Drain(ctx)
	if len(got) != 2 || got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("unexpected drain %+v", got)
	}
	if again := f.Drain(ctx); len(again) != 0 {
		t.Fatalf("queue not emptied: %+v", again)
	}
}

func TestFlash_KeepsNewest(t *testing.T) {
	ctx := context.Background()
	f := NewFlash(storage.NewMemory(), zerolog.Nop())
	for i := 0; i < maxFlash+5; i++ {
		f.Notify(ctx, domain.Notification{Message: fmt.Sprint(i)})
	}
	got := f.Drain(ctx)
	if len(got) != maxFlash || got[0].Message != "5" {
		t.Fatalf("unexpected queue head %q (len %d)", got[0].Message, len(got))
	}
}

func TestMulti_FansOut(t *testing.T) {
	var buf bytes.Buffer
	mem := storage.NewMemory()
	m := Multi{NewConsole(&buf), NewFlash(mem, zerolog.Nop()), nil, NewLog(zerolog.Nop())}

	m.Notify(context.Background(), domain.Notification{Level: domain.LevelWarning, Message: "Check stock"})

	if !strings.Contains(buf.String(), "! Check stock") {
		t.Fatalf("console output %q", buf.String())
	}
	if mem.Len() != 1 {
		t.Fatalf("flash queue not written")
	}
}
