// eq is an offline-first Eisenhower matrix task manager for the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eq/cmd/eq/tui"
	"eq/internal/assistant"
	"eq/internal/config"
	"eq/internal/logging"
	"eq/internal/store"
)

var (
	dataDirFlag string

	dataDir string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eq",
	Short: "Eisenhower matrix task manager",
	Long: `eq keeps your tasks in a four-quadrant Eisenhower matrix, stored
as plain JSON on disk. Run without arguments for the interactive
matrix; use the subcommands for quick edits from scripts or one-liners.

An optional AI assistant can triage tasks in the chat screen when an
OpenAI or Gemini API key is configured.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		dataDir = dataDirFlag
		if dataDir == "" {
			dataDir, err = store.DefaultDir()
			if err != nil {
				return fmt.Errorf("resolving data directory: %w", err)
			}
		} else if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		cfg, err = config.Load(store.ConfigPath(dataDir))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(logging.Options{
			Dir:   dataDir,
			File:  cfg.Logging.File,
			Level: cfg.Logging.Level,
		})
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive matrix (same as running eq with no arguments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"data directory (default: $EQ_DATA_DIR or the OS config dir)")
	rootCmd.AddCommand(addCmd, doneCmd, dropCmd, editCmd)
	rootCmd.AddCommand(todayCmd, tomorrowCmd, weekCmd, statsCmd, tuiCmd)
}

func openStore() (*store.Store, error) {
	return store.Open(dataDir, logger)
}

// runSession starts the interactive matrix and persists everything the
// session touched once the program exits.
func runSession() error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening task store: %w", err)
	}

	opts := tui.Options{
		Store:           st,
		Log:             logger,
		PollInterval:    cfg.Session.ResolvePollInterval(),
		PomodoroMinutes: cfg.Session.PomodoroMinutes,
		InitialHistory:  store.LoadChatHistory(dataDir),
	}

	if cfg.Assistant.ResolveAPIKey() != "" {
		provider, err := assistant.NewProvider(context.Background(), cfg.Assistant)
		if err != nil {
			logger.Warn("assistant unavailable", zap.Error(err))
		} else {
			opts.Gateway = assistant.NewGateway(provider)
		}
	}

	m := tui.New(opts)
	if err := m.StartWatcher(); err != nil {
		logger.Warn("file watcher unavailable", zap.Error(err))
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	done, ok := final.(tui.Model)
	if !ok {
		return nil
	}

	var g errgroup.Group
	g.Go(st.Save)
	g.Go(func() error {
		return store.SaveChatHistory(dataDir, done.History())
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("saving on exit: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
