package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/cgo/tesseract"
)

var versionJSON bool

// buildInfo is what the version command reports.
type buildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	OCR       bool   `json:"ocr"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := buildInfo{
			Version:   version,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			OCR:       tesseract.Available,
		}
		if versionJSON {
			return outputJSON(cmd, info)
		}

		cmd.Printf("shotbrain version %s\n", info.Version)
		if verbose {
			ocr := "not built in (rebuild with -tags tesseract)"
			if info.OCR {
				ocr = "tesseract"
			}
			cmd.Printf("  go:       %s\n", info.GoVersion)
			cmd.Printf("  platform: %s\n", info.Platform)
			cmd.Printf("  ocr:      %s\n", ocr)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)
}
