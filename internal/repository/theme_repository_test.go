package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestThemeDefaultsToLightMode(t *testing.T) {
	repo := NewFileThemeRepository(filepath.Join(t.TempDir(), "theme.json"), testLogger())

	pref, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, pref.DarkMode)
}

func TestThemeSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")

	repo := NewFileThemeRepository(path, testLogger())
	require.NoError(t, repo.Set(ThemePreference{DarkMode: true}))

	reopened := NewFileThemeRepository(path, testLogger())
	pref, err := reopened.Get()
	require.NoError(t, err)
	assert.True(t, pref.DarkMode)
}

func TestThemeOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	repo := NewFileThemeRepository(path, testLogger())

	require.NoError(t, repo.Set(ThemePreference{DarkMode: true}))
	require.NoError(t, repo.Set(ThemePreference{DarkMode: false}))

	pref, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, pref.DarkMode)
}

func TestThemeCorruptFileReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	repo := NewFileThemeRepository(path, testLogger())
	_, err := repo.Get()
	require.Error(t, err)
}
