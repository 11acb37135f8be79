package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPatternOverrides(t *testing.T) {
	path := writeConfig(t, `
patterns:
  score_pattern: 'judge=(\d+(?:\.\d+)?)'
  reason_pattern: 'because[:]\s*(.+)'
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Patterns, 2)
	assert.Equal(t, `judge=(\d+(?:\.\d+)?)`, cfg.Patterns["score_pattern"])
}

func TestLoadEmptyConfig(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Patterns)
}

func TestLoadUnknownPatternName(t *testing.T) {
	path := writeConfig(t, `
patterns:
  scoring_pattern: '\d+'
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidRegexp(t *testing.T) {
	path := writeConfig(t, `
patterns:
  score_pattern: '(['
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
