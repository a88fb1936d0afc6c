package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-fun/internal/platform/tui"
	"github.com/vovakirdan/snake-fun/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and speed from a menu",
	Long: `Start Snake Fun in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant, then pick a
speed. After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  snakefun menu
  snakefun menu --seed 42
  snakefun menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	s := openSession()
	defer s.close()

	cfg := runtimeConfig(0)

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(s.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		baseRate, err := prepareVariant(gameID, "")
		if err != nil {
			return err
		}
		speed, err := tui.RunSpeedSelector(game.Title(), baseRate, cfg)
		if err != nil {
			return err
		}
		if speed.Quit {
			return nil
		}
		if speed.Back {
			continue
		}

		cfg.TickRate, err = prepareVariant(gameID, string(speed.Preset))
		if err != nil {
			return err
		}
		// Each run gets a fresh seed unless one was given
		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		s.log.Info("starting", "game", gameID, "difficulty", speed.Preset, "tps", cfg.TickRate)
		if err := tui.Run(game, s.options(gameID), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
