package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathquest/internal/level"
)

var flagAllLevels bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels with stars and lock state",
	Long: `Shows the player's levels up to the first locked one.
Use --all to list every level.`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagAllLevels, "all", false, "List every level, including locked ones")
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	sess, store, err := openSession(logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	gen := sess.Engine().Config().Generator

	fmt.Printf("Levels - %s\n\n", sess.PlayerID())
	fmt.Printf("  %-5s  %-10s  %-5s  %-5s  %s\n", "Level", "Tier", "Size", "Stars", "Status")
	fmt.Printf("  %-5s  %-10s  %-5s  %-5s  %s\n", "-----", "----", "----", "-----", "------")

	for _, p := range sess.Engine().Repository().Progress() {
		tier, tierErr := gen.TierFor(p.ID)
		if tierErr != nil {
			continue
		}
		size := tier.GridSize(p.ID)
		status := "open"
		switch {
		case p.Completed:
			status = "done"
		case !p.Unlocked:
			status = "locked"
		}
		fmt.Printf("  %-5d  %-10s  %-5s  %-5s  %s\n",
			p.ID, tier.Name, fmt.Sprintf("%dx%d", size, size), stars(p.Stars), status)

		if !p.Unlocked && !flagAllLevels {
			break
		}
	}

	sum := sess.Summary()
	fmt.Println()
	fmt.Printf("Completed %d/%d, %d stars, %d perfect\n", sum.Completed, sum.Levels, sum.TotalStars, sum.Perfect)
	return nil
}

func stars(n int) string {
	n = max(0, min(n, level.MaxStars))
	return strings.Repeat("*", n) + strings.Repeat("-", level.MaxStars-n)
}
