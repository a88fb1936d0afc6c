package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/snake_classic.yaml
var defaultSnakeClassicYAML []byte

// embeddedDefaults maps game IDs to their bundled YAML.
var embeddedDefaults = map[string][]byte{
	"snake":         defaultSnakeYAML,
	"snake_classic": defaultSnakeClassicYAML,
}

// DefaultSnakeConfig returns the default Snake Fun configuration:
// three apples, five obstacles, ten ticks per second.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Width:  0,
			Height: 0,
		},
		Gameplay: SnakeGameplay{
			Apples:      3,
			Obstacles:   5,
			GracePeriod: 30,
			ApplePoints: 10,
			StartMargin: 5,
		},
		Speed: SnakeSpeed{
			TicksPerSecond: 10,
		},
	}
}

// DefaultSnakeClassicConfig returns the minimal variant: one apple and no
// obstacles at a faster pace.
func DefaultSnakeClassicConfig() SnakeConfig {
	cfg := DefaultSnakeConfig()
	cfg.Gameplay.Apples = 1
	cfg.Gameplay.Obstacles = 0
	cfg.Speed.TicksPerSecond = 15
	return cfg
}

// DefaultFor returns the hardcoded configuration for a game ID.
func DefaultFor(gameID string) SnakeConfig {
	if gameID == "snake_classic" {
		return DefaultSnakeClassicConfig()
	}
	return DefaultSnakeConfig()
}
