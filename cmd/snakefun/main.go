// snakefun is a terminal Snake game with apples, obstacles and a crash grace
// period.
//
// Usage:
//
//	snakefun list                - List available variants
//	snakefun play [variant]      - Play a variant (default: snake)
//	snakefun menu                - Pick a variant interactively
//	snakefun scores <variant>    - Show the best runs of a variant
//
// Global flags:
//
//	--fps <rate>              - Override the variant's moves per second
//	--seed <value>            - Set RNG seed for reproducible runs
//	--db <path>               - Run history database (default: ~/.snakefun/scores.db)
//	--high-score-file <path>  - High score file (default: ~/.snakefun/high_score.txt,
//	                            other variants add _<id> before the extension)
//	--log-file <path>         - Log file for interactive commands
//	--log-level <level>       - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-fun/internal/core"
	"github.com/vovakirdan/snake-fun/internal/platform/tui"
	"github.com/vovakirdan/snake-fun/internal/registry"
	"github.com/vovakirdan/snake-fun/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/snake-fun/internal/games/snake"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagDBPath        string
	flagHighScoreFile string
	flagLogFile       string
	flagLogLevel      string
)

// Environment variables consulted when the matching flag is not set.
var flagEnv = map[string]string{
	"db":              "SNAKEFUN_DB",
	"high-score-file": "SNAKEFUN_HIGH_SCORE_FILE",
	"log-level":       "SNAKEFUN_LOG_LEVEL",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakefun",
	Short: "Snake Fun - eat apples, dodge obstacles",
	Long: `Snake Fun is Snake for the terminal. Steer the snake to the apples,
stay clear of the obstacles and your own body. A crash is not fatal at once:
you have a short grace period to steer away.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View the best runs

Examples:
  snakefun play
  snakefun play snake_classic --difficulty hard
  snakefun menu
  snakefun scores snake`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Moves per second (0 = variant config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakefun/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagHighScoreFile, "high-score-file", "~/.snakefun/high_score.txt", "Path to high score file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.snakefun/snakefun.log", "Log file for play and menu")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyEnvironment loads .env and fills unset flags from the environment.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	// A missing .env is the common case
	_ = godotenv.Load()

	flags := cmd.Flags()
	for name, env := range flagEnv {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", flagLogLevel)
	}
	if flagFPS < 0 {
		return fmt.Errorf("--fps must not be negative, got %d", flagFPS)
	}
	return nil
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakefun",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// newFileLogger logs to the --log-file so the TUI screen stays clean.
// When the file cannot be opened, logging is discarded.
func newFileLogger() (*log.Logger, func()) {
	path, err := storage.ExpandHome(flagLogFile)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// defaultVariant keeps the plain --high-score-file path; other variants get
// their own file next to it.
const defaultVariant = "snake"

// session holds the persistence shared by interactive commands. The store may
// be nil when it could not be opened; the game is played without it.
type session struct {
	log      *log.Logger
	store    *storage.Store
	closeLog func()
}

func openSession() *session {
	logger, closeLog := newFileLogger()
	s := &session{log: logger, closeLog: closeLog}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history disabled", "path", flagDBPath, "err", err)
	} else {
		s.store = store
	}

	return s
}

// options returns the platform options for a variant, with its own high
// score file. A nil file plays without one.
func (s *session) options(gameID string) tui.Options {
	variant := gameID
	if variant == defaultVariant {
		variant = ""
	}
	opts := tui.Options{Store: s.store, Logger: s.log}

	hs, err := storage.NewHighScoreFile(storage.VariantPath(flagHighScoreFile, variant))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not use high score file: %v\n", err)
		s.log.Warn("high score file disabled", "path", flagHighScoreFile, "err", err)
		return opts
	}
	opts.HighScores = hs
	return opts
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn("closing run history", "err", err)
		}
	}
	s.closeLog()
}

// runtimeConfig builds the platform config for the current terminal.
func runtimeConfig(tickRate int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if tickRate > 0 {
		cfg.TickRate = tickRate
	}
	cfg.Seed = flagSeed
	return cfg
}

// unknownVariant reports a variant ID missing from the registry.
func unknownVariant(gameID string) error {
	return fmt.Errorf("unknown variant %q (available: %s)", gameID, strings.Join(registry.IDs(), ", "))
}
