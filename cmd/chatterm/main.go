package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/config"
	"github.com/xonecas/chatterm/internal/constants"
	"github.com/xonecas/chatterm/internal/logging"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/store"
	"github.com/xonecas/chatterm/internal/tui"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Terminal chat log with a line editor",
		Long: `chatterm keeps a local chat log. Type a message and press enter to add
it; the log is stored in SQLite and reloaded on the next start.

Keys:
  enter   send       tab     switch focus     esc/ctrl+c  quit
  ctrl+l  clear log  pgup/pgdn scroll         up/down     scroll (log focused)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/chatterm/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newClearCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClearCmd creates the clear subcommand, which empties the stored log
// without starting the UI.
func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			if cfg.History.Disabled {
				return fmt.Errorf("history is disabled in the config")
			}
			history, err := store.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer history.Close()

			if err := history.Clear(); err != nil {
				return err
			}
			fmt.Println("history cleared")
			return nil
		},
	}
}

// setup loads the config and starts file logging. The returned func closes
// the log file.
func setup() (*config.Config, func(), error) {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("data dir: %w", err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath, dataDir)
	} else {
		cfg, err = config.LoadOrDefault(filepath.Join(dataDir, "config.toml"), dataDir)
	}
	if err != nil {
		return nil, nil, err
	}

	closer, err := logging.Setup(cfg.Log, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, func() { _ = closer.Close() }, nil
}

func run(ctx context.Context) error {
	cfg, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info().Str("version", version).Str("user", cfg.User).Msg("starting")

	// A nil history keeps messages for this session only.
	var history *store.History
	if !cfg.History.Disabled {
		history, err = store.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	st, err := state.NewStore(cfg.User, history, cfg.History.LimitOrDefault())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := action.NewQueue()
	defer queue.Close()

	// Taken before Run starts; from then on only the store goroutine reads it.
	initial := st.Snapshot()
	snapshots := make(chan state.State, 1)
	done := make(chan error, 1)
	go func() {
		done <- st.Run(ctx, queue, snapshots)
		close(snapshots)
	}()

	p := tea.NewProgram(tui.New(tui.Options{
		State:     initial,
		Sender:    queue,
		Snapshots: snapshots,
		Theme:     cfg.UI.SyntaxThemeOrDefault(),
		Title:     cfg.UI.TitleOrDefault(),
	}))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run %s: %w", constants.AppName, err)
	}

	// Let the store apply whatever is still queued before history closes.
	queue.Close()
	if err := <-done; err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Msg("state store stopped")
	}
	log.Info().Msg("exiting")
	return nil
}
