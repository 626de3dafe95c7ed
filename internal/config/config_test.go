package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Assistant.Provider)
	assert.Equal(t, 25, cfg.Session.PomodoroMinutes)
}

func TestLoad_FileLayersOverDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "assistant:\n  provider: gemini\n  model: gemini-2.0-flash\nsession:\n  pomodoro_minutes: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Assistant.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Assistant.Model)
	assert.Equal(t, 50, cfg.Session.PomodoroMinutes)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assistant: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveDurations(t *testing.T) {
	t.Parallel()
	a := AssistantConfig{Timeout: "30s"}
	assert.Equal(t, 30*time.Second, a.ResolveTimeout())
	assert.Equal(t, 2*time.Minute, AssistantConfig{Timeout: "bogus"}.ResolveTimeout())

	s := SessionConfig{PollInterval: "250ms"}
	assert.Equal(t, 250*time.Millisecond, s.ResolvePollInterval())
	assert.Equal(t, 100*time.Millisecond, SessionConfig{}.ResolvePollInterval())
}
