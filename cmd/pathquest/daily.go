package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathquest/internal/progress"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's challenges",
	Long: `Display today's daily challenges, their progress and the current streak.

Every player gets the same challenges on the same day. Completing all of
them on consecutive days grows the streak; missing a day resets it.`,
	RunE: runDaily,
}

func runDaily(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	sess, store, err := openSession(logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	engine := sess.Engine()
	daily := progress.Rollover(sess.State().Daily, engine.Config().Daily, engine.Now())

	fmt.Printf("Daily challenges - %s\n\n", daily.Day)
	for _, c := range daily.Challenges {
		mark := "[ ]"
		if c.Completed {
			mark = "[x]"
		}
		fmt.Printf("  %s %-18s %d/%d\n", mark, c.Type, c.Progress, c.Requirement)
	}
	fmt.Println()
	if daily.AllCompleted() {
		fmt.Println("All done for today!")
	}
	fmt.Printf("Streak: %d day(s)\n", daily.Streak)
	return nil
}
