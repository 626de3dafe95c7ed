package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvDataDir overrides the data directory when set.
const EnvDataDir = "EQ_DATA_DIR"

const appDirName = "eq"

// DefaultDir resolves the base directory for all persisted data: the
// EQ_DATA_DIR environment variable when set, otherwise an "eq" directory
// under the OS user config dir. The directory is created if missing.
func DefaultDir() (string, error) {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve data dir (set %s to override): %w", EnvDataDir, err)
		}
		dir = filepath.Join(base, appDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return dir, nil
}

// TasksPath returns the tasks file inside dir.
func TasksPath(dir string) string { return filepath.Join(dir, "tasks.json") }

// ChatHistoryPath returns the chat transcript file inside dir.
func ChatHistoryPath(dir string) string { return filepath.Join(dir, "chat_history.json") }

// AuditLogPath returns the append-only event log inside dir.
func AuditLogPath(dir string) string { return filepath.Join(dir, "history.jsonl") }

// ConfigPath returns the configuration file inside dir.
func ConfigPath(dir string) string { return filepath.Join(dir, "config.yaml") }
