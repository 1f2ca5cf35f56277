package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathquest/internal/outbox"
	"github.com/vovakirdan/pathquest/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Flush queued progress once",
	Long: `Push every pending outbox entry (saves, level results and unlocked
achievements) and report what was sent. Failed entries stay queued and are
retried on the next flush.`,
	RunE: runSync,
}

func runSync(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening saves database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	syncer := outbox.NewSyncer(store, outbox.LogPusher{Logger: logger.WithPrefix("sync")}, logger)
	report, err := syncer.Flush(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	pending, sent, err := store.OutboxCounts()
	if err != nil {
		return fmt.Errorf("reading outbox: %w", err)
	}
	fmt.Printf("Sent %d, failed %d (%d pending, %d sent in total)\n", report.Sent, report.Failed, pending, sent)
	return nil
}
