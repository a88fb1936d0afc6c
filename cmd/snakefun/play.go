package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-fun/internal/config"
	"github.com/vovakirdan/snake-fun/internal/games/snake"
	"github.com/vovakirdan/snake-fun/internal/platform/tui"
	"github.com/vovakirdan/snake-fun/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Snake Fun",
	Long: `Start a run of the given variant (default: snake).

Controls:
  Arrows/WASD  - Steer
  P            - Pause
  R            - Restart (after game over)
  F            - Toggle fullscreen
  Ctrl+S       - Save a screenshot
  Esc/Q        - Quit

Difficulty options pick a constant speed for the run:
  easy   - two thirds of the variant's speed
  normal - the variant's speed
  hard   - one and a half times the variant's speed

Examples:
  snakefun play
  snakefun play snake_classic
  snakefun play --difficulty hard
  snakefun play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Speed preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return unknownVariant(gameID)
	}

	tickRate, err := prepareVariant(gameID, flagDifficulty)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	s := openSession()
	defer s.close()

	cfg := runtimeConfig(tickRate)
	s.log.Info("starting", "game", gameID, "difficulty", flagDifficulty, "tps", tickRate)

	if err := tui.Run(game, s.options(gameID), cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// prepareVariant applies --config and the speed preset to the snake package
// and returns the moves per second for the run. An invalid config file is an
// error here so it is reported before the screen is taken over.
func prepareVariant(gameID, difficulty string) (int, error) {
	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(difficulty)

	gameCfg, err := snake.LoadConfig(gameID)
	if config.IsValidationError(err) {
		return 0, fmt.Errorf("invalid %s config: %w", gameID, err)
	}
	if err != nil {
		return 0, err
	}
	if flagFPS > 0 {
		return flagFPS, nil
	}
	return gameCfg.Speed.TicksPerSecond, nil
}
