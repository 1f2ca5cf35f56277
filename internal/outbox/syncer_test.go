package outbox

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/storage"
)

// flakyPusher fails the first n pushes.
type flakyPusher struct {
	failures int
	pushed   []string
}

func (p *flakyPusher) Push(_ context.Context, e storage.OutboxEntry) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("backend unavailable")
	}
	p.pushed = append(p.pushed, e.Kind)
	return nil
}

func newTestSyncer(t *testing.T, pusher Pusher) (*Syncer, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "sync.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewSyncer(store, pusher, log.New(io.Discard)), store
}

func TestFlushRetriesFailures(t *testing.T) {
	pusher := &flakyPusher{failures: 1}
	syncer, store := newTestSyncer(t, pusher)

	if err := syncer.Enqueue("p", KindSnapshot, map[string]int{"coins": 3}); err != nil {
		t.Fatalf("Enqueue() failed: %v", err)
	}
	if err := syncer.Enqueue("p", KindAchievement, []string{"first_steps"}); err != nil {
		t.Fatalf("Enqueue() failed: %v", err)
	}

	report, err := syncer.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if report.Sent != 1 || report.Failed != 1 {
		t.Errorf("first flush = %+v, want 1 sent 1 failed", report)
	}

	pending, _ := store.PendingOutbox(10)
	if len(pending) != 1 || pending[0].Kind != KindSnapshot || pending[0].Attempts != 1 {
		t.Fatalf("pending after failure = %+v", pending)
	}

	report, err = syncer.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if report.Sent != 1 || report.Failed != 0 {
		t.Errorf("retry flush = %+v, want 1 sent", report)
	}

	p, s, _ := store.OutboxCounts()
	if p != 0 || s != 2 {
		t.Errorf("counts = %d pending %d sent, want 0/2", p, s)
	}
	if len(pusher.pushed) != 2 {
		t.Errorf("pushed %v", pusher.pushed)
	}
}

func TestFlushStopsOnCancel(t *testing.T) {
	syncer, store := newTestSyncer(t, &flakyPusher{})
	syncer.Enqueue("p", KindResult, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := syncer.Flush(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Flush() error = %v, want context.Canceled", err)
	}
	pending, _ := store.PendingOutbox(10)
	if len(pending) != 1 {
		t.Error("cancelled flush should leave entries pending")
	}
}

func TestEnqueueRejectsUnencodable(t *testing.T) {
	syncer, _ := newTestSyncer(t, &flakyPusher{})
	if err := syncer.Enqueue("p", KindResult, make(chan int)); err == nil {
		t.Error("expected encode error")
	}
}

func TestLogPusher(t *testing.T) {
	p := LogPusher{Logger: log.New(io.Discard)}
	if err := p.Push(context.Background(), storage.OutboxEntry{Kind: KindSnapshot}); err != nil {
		t.Errorf("Push() = %v", err)
	}
}
