package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// ThemePreference is the single durable piece of client-local state: the
// dark-mode flag.
type ThemePreference struct {
	DarkMode bool `json:"dark_mode"`
}

type ThemeRepository interface {
	Get() (ThemePreference, error)
	Set(pref ThemePreference) error
}

// fileThemeRepository keeps the preference in a small JSON file, written
// atomically via a temp-file rename so a crash mid-write cannot corrupt it.
type fileThemeRepository struct {
	mu   sync.Mutex
	path string
	log  *logrus.Logger
}

func NewFileThemeRepository(path string, logger *logrus.Logger) ThemeRepository {
	return &fileThemeRepository{path: path, log: logger}
}

func (r *fileThemeRepository) Get() (ThemePreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ThemePreference{}, nil
		}
		r.log.Errorf("ThemeRepository: Failed to read %s: %v", r.path, err)
		return ThemePreference{}, fmt.Errorf("failed to read theme preference: %w", err)
	}

	var pref ThemePreference
	if err := json.Unmarshal(data, &pref); err != nil {
		r.log.Errorf("ThemeRepository: Failed to parse %s: %v", r.path, err)
		return ThemePreference{}, fmt.Errorf("failed to parse theme preference: %w", err)
	}
	return pref, nil
}

func (r *fileThemeRepository) Set(pref ThemePreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("failed to encode theme preference: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "theme-*.json")
	if err != nil {
		r.log.Errorf("ThemeRepository: Failed to create temp file for %s: %v", r.path, err)
		return fmt.Errorf("failed to write theme preference: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write theme preference: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write theme preference: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		r.log.Errorf("ThemeRepository: Failed to replace %s: %v", r.path, err)
		return fmt.Errorf("failed to write theme preference: %w", err)
	}

	r.log.Infof("ThemeRepository: Dark mode preference set to %t", pref.DarkMode)
	return nil
}
