// Package config provides YAML-based game configuration loading and
// speed presets for Snake Fun.
package config

import "fmt"

// SnakeConfig contains all configuration for one Snake variant.
type SnakeConfig struct {
	Grid     SnakeGrid     `yaml:"grid"`
	Gameplay SnakeGameplay `yaml:"gameplay"`
	Speed    SnakeSpeed    `yaml:"speed"`
}

// SnakeGrid defines the playing field size in cells.
// Zero means fit the terminal.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeGameplay defines the rules of a run.
type SnakeGameplay struct {
	Apples      int `yaml:"apples"`
	Obstacles   int `yaml:"obstacles"`
	GracePeriod int `yaml:"grace_period"` // Colliding ticks before game over
	ApplePoints int `yaml:"apple_points"`
	StartMargin int `yaml:"start_margin"` // Minimum start distance from the border
}

// SnakeSpeed defines how fast the frame clock runs.
type SnakeSpeed struct {
	TicksPerSecond int `yaml:"ticks_per_second"`
}

// ValidationError describes a config value that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks value ranges. Grid capacity is checked by the engine,
// since it depends on the terminal size when the grid fits the window.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Width < 0:
		return ValidationError{Field: "grid.width", Message: "must not be negative"}
	case c.Grid.Height < 0:
		return ValidationError{Field: "grid.height", Message: "must not be negative"}
	case c.Gameplay.Apples < 0:
		return ValidationError{Field: "gameplay.apples", Message: "must not be negative"}
	case c.Gameplay.Obstacles < 0:
		return ValidationError{Field: "gameplay.obstacles", Message: "must not be negative"}
	case c.Gameplay.GracePeriod < 1:
		return ValidationError{Field: "gameplay.grace_period", Message: "must be at least 1"}
	case c.Gameplay.ApplePoints < 0:
		return ValidationError{Field: "gameplay.apple_points", Message: "must not be negative"}
	case c.Gameplay.StartMargin < 0:
		return ValidationError{Field: "gameplay.start_margin", Message: "must not be negative"}
	case c.Speed.TicksPerSecond < 1 || c.Speed.TicksPerSecond > 120:
		return ValidationError{
			Field:   "speed.ticks_per_second",
			Message: fmt.Sprintf("must be between 1 and 120, got %d", c.Speed.TicksPerSecond),
		}
	}
	return nil
}

// DifficultyPreset represents a named speed setting.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset.
// An empty string selects DifficultyNormal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// TickRateForPreset scales a base tick rate. Speed stays constant within a
// run; the preset only picks it.
func TickRateForPreset(preset DifficultyPreset, base int) int {
	switch preset {
	case DifficultyEasy:
		return max(1, base*2/3)
	case DifficultyHard:
		return base * 3 / 2
	default:
		return base
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Speed.TicksPerSecond = TickRateForPreset(preset, cfg.Speed.TicksPerSecond)
}
