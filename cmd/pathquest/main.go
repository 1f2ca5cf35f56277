// pathquest is a grid puzzle game: walk from S to G within the move budget
// across 200 generated levels.
//
// Usage:
//
//	pathquest play [level]      - Play in the terminal
//	pathquest levels            - List levels with stars and lock state
//	pathquest generate <level>  - Print a generated level
//	pathquest stats             - Show progress, achievements and best runs
//	pathquest daily             - Show today's challenges
//	pathquest serve             - Start SSH server for remote play
//	pathquest sync              - Flush queued progress once
//
// Global flags:
//
//	--seed <value>        - Level layout seed (default: 1)
//	--db <path>           - Saves database (default: ~/.pathquest/pathquest.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <id>         - Save slot (default: local)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/gameplay"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/outbox"
	"github.com/vovakirdan/pathquest/internal/session"
	"github.com/vovakirdan/pathquest/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathquest",
	Short: "PathQuest - a grid puzzle game for your terminal",
	Long: `PathQuest is a grid puzzle game. Each level is a square board with a
start (S) and a goal (G). Reach the goal within the move budget to earn up
to three stars and unlock the next level.

Available commands:
  play      - Play in the terminal
  levels    - List levels with stars and lock state
  generate  - Print a generated level
  stats     - Show progress, achievements and best runs
  daily     - Show today's challenges
  serve     - Start SSH server for remote play
  sync      - Flush queued progress once

Examples:
  pathquest play
  pathquest play 12 --difficulty easy
  pathquest generate 150 --yaml
  pathquest serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "Level layout seed; saves are tied to it")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pathquest/pathquest.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "local", "Save slot to load and update")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
}

// newLogger returns the CLI logger. Debug output only with --verbose.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pathquest",
		Level:           log.WarnLevel,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// newEngine builds a fresh engine over its own level repository.
func newEngine(cfg config.Config, logger *log.Logger) *gameplay.Engine {
	gen := level.NewGenerator(cfg.Generator, flagSeed, level.WithLogger(logger))
	repo := level.NewRepository(gen, logger)
	return gameplay.NewEngine(repo, cfg, gameplay.WithLogger(logger))
}

// openSession loads the player's save. The returned store may be nil when
// the database cannot be opened; the game still works without persistence.
func openSession(logger *log.Logger) (*session.Session, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open saves database, progress will not persist", "error", err)
		store = nil
	}

	var syncer *outbox.Syncer
	if store != nil {
		syncer = outbox.NewSyncer(store, outbox.LogPusher{Logger: logger.WithPrefix("sync")}, logger)
	}

	sess, err := session.Open(newEngine(cfg, logger), store, syncer, flagPlayer, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	return sess, store, nil
}
