package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/watcher"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Analyse screenshots as they are saved",
	Long: `Watches a directory and analyses every new image whose name contains the
configured pattern (default "Screenshot").

If an <image>.json sidecar with {"text", "qr", "annotations"} exists it is
used instead of text recognition.

The directory defaults to the watch.dir setting. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "", "file name pattern (overrides watch.pattern)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if analysisService == nil || settingsService == nil {
		return errors.New("analysis service not configured")
	}

	cfg, err := watchConfig(args)
	if err != nil {
		return err
	}

	w := watcher.New(analysisService, cfg)
	defer w.Close()

	results, err := w.Watch(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", cfg.Dir)
	for res := range results {
		name := filepath.Base(res.Path)
		if res.Err != nil {
			cmd.PrintErrf("  ✗ %s: %v\n", name, res.Err)
			continue
		}
		cmd.Printf("  ✓ %s → %s %s\n", name, badge(cmd, res.Capture.Category), res.Capture.Title)
	}
	return nil
}

// watchConfig builds the watcher configuration from settings, an optional
// directory argument and the --pattern flag.
func watchConfig(args []string) (watcher.Config, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return watcher.Config{}, fmt.Errorf("failed to get settings: %w", err)
	}

	cfg := watcher.Config{
		Dir:     settings.Watch.Dir,
		Pattern: settings.Watch.Pattern,
		Rate:    settings.Watch.Rate,
	}
	if len(args) == 1 {
		cfg.Dir = args[0]
	}
	if watchPattern != "" {
		cfg.Pattern = watchPattern
	}
	if cfg.Dir == "" {
		return watcher.Config{}, errors.New("no directory given: pass [dir] or run 'shotbrain settings set watch.dir <dir>'")
	}
	return cfg, nil
}
