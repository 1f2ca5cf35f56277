// Package outbox pushes locally queued progress events to a remote backend.
// Entries live in the storage outbox until a push succeeds, so a backend
// outage never blocks or rolls back local play.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/storage"
)

// Entry kinds.
const (
	KindSnapshot    = "snapshot"
	KindAchievement = "achievement"
	KindResult      = "result"
)

// Queue is the persistent side of the outbox.
type Queue interface {
	Enqueue(playerID, kind string, payload []byte) (string, error)
	PendingOutbox(limit int) ([]storage.OutboxEntry, error)
	MarkSent(id string) error
	MarkFailed(id, reason string) error
}

// Pusher delivers one entry to the backend.
type Pusher interface {
	Push(ctx context.Context, entry storage.OutboxEntry) error
}

// FlushReport summarises one flush.
type FlushReport struct {
	Sent   int
	Failed int
}

// Syncer drains the outbox through a Pusher.
type Syncer struct {
	queue  Queue
	pusher Pusher
	logger *log.Logger
	batch  int
}

// NewSyncer creates a syncer.
func NewSyncer(queue Queue, pusher Pusher, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{queue: queue, pusher: pusher, logger: logger, batch: 50}
}

// Enqueue JSON-encodes v and adds it to the outbox.
func (s *Syncer) Enqueue(playerID, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("outbox: encode %s: %w", kind, err)
	}
	if _, err := s.queue.Enqueue(playerID, kind, payload); err != nil {
		return fmt.Errorf("outbox: %w", err)
	}
	return nil
}

// Flush pushes every pending entry once. Push failures are recorded on the
// entry and retried by the next flush; only queue errors are returned.
func (s *Syncer) Flush(ctx context.Context) (FlushReport, error) {
	var report FlushReport

	entries, err := s.queue.PendingOutbox(s.batch)
	if err != nil {
		return report, fmt.Errorf("outbox: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if pushErr := s.pusher.Push(ctx, e); pushErr != nil {
			report.Failed++
			s.logger.Warn("sync push failed", "id", e.ID, "kind", e.Kind, "attempt", e.Attempts+1, "error", pushErr)
			if err := s.queue.MarkFailed(e.ID, pushErr.Error()); err != nil {
				return report, fmt.Errorf("outbox: %w", err)
			}
			continue
		}

		if err := s.queue.MarkSent(e.ID); err != nil {
			return report, fmt.Errorf("outbox: %w", err)
		}
		report.Sent++
	}

	if report.Sent+report.Failed > 0 {
		s.logger.Debug("outbox flushed", "sent", report.Sent, "failed", report.Failed)
	}
	return report, nil
}

// Run flushes every interval until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Flush(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("outbox flush failed", "error", err)
			}
		}
	}
}

// LogPusher "pushes" by logging; the default when no backend is configured.
type LogPusher struct {
	Logger *log.Logger
}

// Push logs the entry.
func (p LogPusher) Push(_ context.Context, e storage.OutboxEntry) error {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("sync", "player", e.PlayerID, "kind", e.Kind, "bytes", len(e.Payload))
	return nil
}
