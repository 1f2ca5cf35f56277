package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Start the game. With a level number that level starts directly,
otherwise the level picker opens (or the level in progress resumes).

Controls:
  Arrows/WASD  - Move
  H            - Use a hint
  R            - Restart the level
  N            - Next level
  T / X / E    - Teleport, wall-break, extra moves
  Tab          - Level picker
  ?            - Full help
  Q/Ctrl+C     - Save and quit

Examples:
  pathquest play
  pathquest play 40
  pathquest play --player alice --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg = cfg.WithScreen(w, h)
	}
	cfg.Seed = flagSeed
	cfg.PlayerID = flagPlayer

	sess, store, err := openSession(logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 {
		id, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return fmt.Errorf("level must be a number, got %q", args[0])
		}
		if startErr := sess.Start(id); startErr != nil {
			return startErr
		}
	}

	if runErr := tui.Run(sess, store, cfg); runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
