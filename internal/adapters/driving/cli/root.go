// Package cli provides the shotbrain command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
	"github.com/custodia-labs/shotbrain/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services wired in by the entrypoint.
var (
	analysisService driving.AnalysisService
	captureService  driving.CaptureService
	actionService   driving.ActionService
	settingsService driving.SettingsService
)

// Services holds the driving ports used by the commands.
type Services struct {
	Analysis driving.AnalysisService
	Capture  driving.CaptureService
	Actions  driving.ActionService
	Settings driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "shotbrain",
	Short: "Classify screenshots into links, phones, bank transfers, events and notes",
	Long: `shotbrain reads the text and QR codes of screenshots, decides what each
one is about and turns it into actionable blocks: open a link, dial a number,
copy a bank account, add an event to the calendar or navigate to an address.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	analysisService = s.Analysis
	captureService = s.Capture
	actionService = s.Actions
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
