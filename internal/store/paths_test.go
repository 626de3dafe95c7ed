package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDir_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "eq-data")
	t.Setenv(EnvDataDir, want)

	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPathsLayout(t *testing.T) {
	t.Parallel()
	dir := "/data/eq"
	assert.Equal(t, filepath.Join(dir, "tasks.json"), TasksPath(dir))
	assert.Equal(t, filepath.Join(dir, "chat_history.json"), ChatHistoryPath(dir))
	assert.Equal(t, filepath.Join(dir, "history.jsonl"), AuditLogPath(dir))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigPath(dir))
}
