// Package logging wires zap to a file under the data directory. The TUI
// owns the terminal, so nothing here may write to stdout or stderr once the
// session is running.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Dir is the data directory; the log file is created inside it.
	Dir string
	// File is the log file name, e.g. "eq.log".
	File string
	// Level is one of debug, info, warn, error.
	Level string
}

// New builds a file-backed zap logger. The caller owns Sync on shutdown.
func New(opts Options) (*zap.Logger, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("log directory required")
	}
	if opts.File == "" {
		opts.File = "eq.log"
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(opts.Dir, opts.File)}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
