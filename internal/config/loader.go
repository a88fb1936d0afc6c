package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// appDirName is the per-user directory holding configs, scores and logs.
const appDirName = ".snakefun"

// AppDir returns ~/.snakefun.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

// LoadSnake loads the configuration of a Snake variant.
// Search order: customPath -> ~/.snakefun/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> hardcoded default.
//
// Files are decoded on top of the variant's defaults, so a file may set only
// the keys it wants to change.
func LoadSnake(gameID, customPath string) (SnakeConfig, error) {
	filename := gameID + ".yaml"

	// Custom path is explicit, so any failure is reported
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeSnake(gameID, data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// User and local files are optional: unreadable or broken ones are skipped
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeSnake(gameID, data); err == nil {
			return cfg, nil
		}
	}

	if data, ok := embeddedDefaults[gameID]; ok {
		if cfg, err := decodeSnake(gameID, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultFor(gameID), nil
}

func decodeSnake(gameID string, data []byte) (SnakeConfig, error) {
	cfg := DefaultFor(gameID)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir, err := AppDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
