package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/watcher"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

var tuiWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for shotbrain.

Browse captures, open their blocks and perform actions, or paste text
from a screenshot to analyse it.

With --watch, screenshots saved to watch.dir are analysed in the
background while the UI runs.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open capture / perform block action
  n        - Analyse pasted text (ctrl+s to submit)
  /        - Search
  f        - Cycle category filter
  s        - Show sensitive captures
  d        - Delete capture
  c        - Copy block
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "analyse new screenshots in watch.dir while running")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	return tui.NewPorts(captureService, actionService, analysisService)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if tuiWatch {
		if err := startBackgroundWatch(ctx); err != nil {
			return err
		}
	}

	app.WithContext(ctx)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// startBackgroundWatch runs the watcher until ctx is cancelled. Results go
// to the log since the terminal belongs to the UI.
func startBackgroundWatch(ctx context.Context) error {
	if analysisService == nil || settingsService == nil {
		return errors.New("analysis service not configured")
	}
	cfg, err := watchConfig(nil)
	if err != nil {
		return err
	}

	w := watcher.New(analysisService, cfg)
	results, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for res := range results {
			if res.Err != nil {
				logger.Warn("watch: %s: %v", filepath.Base(res.Path), res.Err)
				continue
			}
			logger.Debug("watch: %s → %s", filepath.Base(res.Path), res.Capture.Category)
		}
	}()
	return nil
}
