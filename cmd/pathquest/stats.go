package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathquest/internal/registry"
	"github.com/vovakirdan/pathquest/internal/storage"
)

var errNoStore = errors.New("no saves database available")

var (
	flagStatsLevel int
	flagStatsReset bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, achievements and best runs",
	Long: `Display the player's totals, every achievement with its progress and
the most recent level results.

With --level, shows the best completions of that level across all players
in the database instead. --reset deletes the player's recorded results
(saves, stars and achievements are kept).

Examples:
  pathquest stats
  pathquest stats --player alice
  pathquest stats --level 12
  pathquest stats --player alice --reset`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLevel, "level", 0, "Show the best runs of one level")
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Delete the player's level results")
}

func runStats(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	sess, store, err := openSession(logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if flagStatsReset {
		return resetResults(store, sess.PlayerID())
	}
	if flagStatsLevel > 0 {
		return printBestRuns(store, flagStatsLevel)
	}

	sum := sess.Summary()
	st := sess.State()
	fmt.Printf("Player %s\n\n", sess.PlayerID())
	fmt.Printf("  Levels completed  %d/%d (%d unlocked)\n", sum.Completed, sum.Levels, sum.Unlocked)
	fmt.Printf("  Stars             %d (%d perfect levels)\n", sum.TotalStars, sum.Perfect)
	fmt.Printf("  Coins             %d (%d earned)\n", st.Coins, sum.Stats.CoinsEarned)
	fmt.Printf("  Lives / hints     %d / %d\n", st.Lives, st.Hints)
	fmt.Printf("  Attempts          %d completed, %d failed\n", sum.Stats.Completions, sum.Stats.Failures)
	if sum.Stats.FastestLevel > 0 {
		fmt.Printf("  Fastest level     %s\n", sum.Stats.FastestLevel.Round(time.Millisecond))
	}
	fmt.Printf("  Daily streak      %d (best %d)\n", sum.Streak, sum.Stats.BestStreak)

	fmt.Printf("\nAchievements %d/%d\n", sum.Achievements, len(st.Achievements))
	for _, a := range st.Achievements {
		def, lookupErr := registry.Lookup(a.ID)
		if lookupErr != nil {
			continue
		}
		mark := "[ ]"
		if a.Unlocked {
			mark = "[x]"
		}
		fmt.Printf("  %s %-16s %-40s %d/%d\n", mark, def.Title, def.Description, a.Progress, def.Threshold)
	}

	if store == nil {
		return nil
	}
	recent, err := store.RecentResults(sess.PlayerID(), 10)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	fmt.Println("\nRecent results")
	if len(recent) == 0 {
		fmt.Println("  No levels played yet.")
		return nil
	}
	for _, r := range recent {
		fmt.Printf("  %s  level %-3d  %-9s  %s  %d/%d moves  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Outcome,
			stars(r.Stars), r.Moves, r.Budget, r.Duration.Round(time.Second))
	}
	return nil
}

func resetResults(store *storage.Store, playerID string) error {
	if store == nil {
		return errNoStore
	}
	if err := store.ClearResults(playerID); err != nil {
		return err
	}
	fmt.Printf("Cleared level results for %s\n", playerID)
	return nil
}

func printBestRuns(store *storage.Store, levelID int) error {
	if store == nil {
		return errNoStore
	}
	results, err := store.TopResults(levelID, 10)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Printf("Best runs - level %d\n\n", levelID)
	if len(results) == 0 {
		fmt.Println("No completions recorded yet.")
		return nil
	}
	fmt.Printf("  %-4s  %-16s  %-5s  %-7s  %s\n", "Rank", "Player", "Stars", "Moves", "Time")
	fmt.Printf("  %-4s  %-16s  %-5s  %-7s  %s\n", "----", "------", "-----", "-----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-16s  %-5s  %-7s  %s\n",
			i+1, r.PlayerID, stars(r.Stars), fmt.Sprintf("%d/%d", r.Moves, r.Budget), r.Duration.Round(time.Second))
	}
	return nil
}
