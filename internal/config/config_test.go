package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	for _, id := range []string{"snake", "snake_classic"} {
		cfg, err := decodeSnake(id, embeddedDefaults[id])
		if err != nil {
			t.Fatalf("%s: embedded default does not decode: %v", id, err)
		}
		if cfg != DefaultFor(id) {
			t.Errorf("%s: embedded = %+v, hardcoded = %+v", id, cfg, DefaultFor(id))
		}
	}
}

func TestDefaultVariants(t *testing.T) {
	fun := DefaultSnakeConfig()
	if fun.Gameplay.Apples != 3 || fun.Gameplay.Obstacles != 5 || fun.Speed.TicksPerSecond != 10 {
		t.Errorf("unexpected Snake Fun defaults: %+v", fun)
	}

	classic := DefaultSnakeClassicConfig()
	if classic.Gameplay.Apples != 1 || classic.Gameplay.Obstacles != 0 {
		t.Errorf("unexpected classic defaults: %+v", classic)
	}
	if classic.Gameplay.GracePeriod != 30 || classic.Gameplay.ApplePoints != 10 {
		t.Errorf("classic should share the grace period and points: %+v", classic)
	}
}

func TestLoadSnakeCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "grid:\n  width: 40\n  height: 20\ngameplay:\n  obstacles: 9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("snake", path)
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg.Grid.Width != 40 || cfg.Grid.Height != 20 {
		t.Errorf("grid = %+v, expected 40x20", cfg.Grid)
	}
	if cfg.Gameplay.Obstacles != 9 {
		t.Errorf("obstacles = %d, expected 9", cfg.Gameplay.Obstacles)
	}
	if cfg.Gameplay.Apples != 3 || cfg.Speed.TicksPerSecond != 10 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadSnakeCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake("snake", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("grid: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake("snake", broken); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("gameplay:\n  grace_period: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSnake("snake", invalid)
	if !IsValidationError(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
	var ve ValidationError
	if errors.As(err, &ve) && ve.Field != "gameplay.grace_period" {
		t.Errorf("Field = %q, expected gameplay.grace_period", ve.Field)
	}
}

func TestLoadSnakeFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSnake("snake_classic", "")
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg != DefaultSnakeClassicConfig() {
		t.Errorf("cfg = %+v, expected classic defaults", cfg)
	}

	cfg, err = LoadSnake("unknown_variant", "")
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("unknown variant should use Snake Fun defaults, got %+v", cfg)
	}
}

func TestLoadSnakeLocalConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "snake.yaml"), []byte("speed:\n  ticks_per_second: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("snake", "")
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg.Speed.TicksPerSecond != 12 {
		t.Errorf("ticks_per_second = %d, expected 12 from ./configs", cfg.Speed.TicksPerSecond)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
		field  string
	}{
		{"defaults", func(*SnakeConfig) {}, ""},
		{"negative width", func(c *SnakeConfig) { c.Grid.Width = -1 }, "grid.width"},
		{"negative apples", func(c *SnakeConfig) { c.Gameplay.Apples = -3 }, "gameplay.apples"},
		{"zero grace", func(c *SnakeConfig) { c.Gameplay.GracePeriod = 0 }, "gameplay.grace_period"},
		{"zero speed", func(c *SnakeConfig) { c.Speed.TicksPerSecond = 0 }, "speed.ticks_per_second"},
		{"silly speed", func(c *SnakeConfig) { c.Speed.TicksPerSecond = 1000 }, "speed.ticks_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("Validate() = %v, expected error on %s", err, tt.field)
			}
		})
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		rate     int
	}{
		{"", DifficultyNormal, 10},
		{"easy", DifficultyEasy, 6},
		{"normal", DifficultyNormal, 10},
		{"hard", DifficultyHard, 15},
	}

	for _, tt := range tests {
		preset, err := ParseDifficulty(tt.in)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q) failed: %v", tt.in, err)
		}
		if preset != tt.expected {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.in, preset, tt.expected)
		}

		cfg := DefaultSnakeConfig()
		ApplySnakePreset(&cfg, preset)
		if cfg.Speed.TicksPerSecond != tt.rate {
			t.Errorf("%s: ticks_per_second = %d, expected %d", preset, cfg.Speed.TicksPerSecond, tt.rate)
		}
	}

	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("unknown preset should be rejected")
	}
	if got := TickRateForPreset(DifficultyEasy, 1); got != 1 {
		t.Errorf("easy preset should never stop the clock, got %d", got)
	}
}
