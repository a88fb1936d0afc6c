package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HighScoreFile stores a single non-negative high score as plain decimal
// text with no delimiters.
type HighScoreFile struct {
	path string
}

// NewHighScoreFile returns a high score file at path. A leading ~ is expanded.
func NewHighScoreFile(path string) (*HighScoreFile, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &HighScoreFile{path: expanded}, nil
}

// Path returns the file location.
func (f *HighScoreFile) Path() string { return f.path }

// Load reads the stored high score. A missing file means 0.
func (f *HighScoreFile) Load() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: read high score: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil || score < 0 {
		return 0, fmt.Errorf("storage: malformed high score %q in %s", text, f.path)
	}
	return score, nil
}

// Save writes score, replacing the previous value.
func (f *HighScoreFile) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative high score %d", score)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("storage: write high score: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("storage: write high score: %w", err)
	}
	return nil
}

// Record saves score if it beats the stored value and reports whether it did.
func (f *HighScoreFile) Record(score int) (bool, error) {
	best, err := f.Load()
	if err != nil {
		// An unreadable file is replaced by the new result
		best = 0
	}
	if score <= best {
		return false, nil
	}
	if err := f.Save(score); err != nil {
		return false, err
	}
	return true, nil
}

// VariantPath derives the high score file of a game variant from path by
// inserting "_<variant>" before the extension. An empty variant returns path.
func VariantPath(path, variant string) string {
	if variant == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + variant + ext
}
