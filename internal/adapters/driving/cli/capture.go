package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

var (
	captureCategory string
	captureQuery    string
	captureAll      bool
	captureLimit    int
	captureJSON     bool
)

var captureCmd = &cobra.Command{
	Use:     "capture",
	Aliases: []string{"captures"},
	Short:   "Manage stored captures",
	Long:    `List, show, or delete analysed screenshots.`,
}

var captureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captures, newest first",
	Long: `Lists stored captures, newest first.

Bank captures are sensitive and hidden unless --all is given or
--category bank selects them.`,
	Args: cobra.NoArgs,
	RunE: runCaptureList,
}

var captureShowCmd = &cobra.Command{
	Use:   "show [capture-id]",
	Short: "Show a capture with its blocks",
	Long:  `Shows a capture. The ID may be abbreviated to any unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureShow,
}

var captureDeleteCmd = &cobra.Command{
	Use:   "delete [capture-id]",
	Short: "Delete a capture and its vault image",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureDelete,
}

func init() {
	captureListCmd.Flags().StringVarP(&captureCategory, "category", "c", "", "only list this category")
	captureListCmd.Flags().StringVarP(&captureQuery, "query", "q", "", "match text, content or title")
	captureListCmd.Flags().BoolVarP(&captureAll, "all", "a", false, "include sensitive captures")
	captureListCmd.Flags().IntVarP(&captureLimit, "limit", "n", 20, "maximum number of captures (0 = all)")
	captureListCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")
	captureShowCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")

	captureCmd.AddCommand(captureListCmd)
	captureCmd.AddCommand(captureShowCmd)
	captureCmd.AddCommand(captureDeleteCmd)
	rootCmd.AddCommand(captureCmd)
}

func runCaptureList(cmd *cobra.Command, _ []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	filter := domain.CaptureFilter{
		Query:            captureQuery,
		IncludeSensitive: captureAll,
		Limit:            captureLimit,
	}
	if captureCategory != "" {
		c, err := domain.ParseCategory(captureCategory)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	captures, err := captureService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list captures: %w", err)
	}

	if captureJSON {
		return outputJSON(cmd, captures)
	}

	if len(captures) == 0 {
		cmd.Println("No captures found.")
		return nil
	}

	for i := range captures {
		printCaptureLine(cmd, &captures[i])
	}
	cmd.Printf("\nTotal: %d captures\n", len(captures))
	return nil
}

func runCaptureShow(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	capture, err := captureService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get capture: %w", err)
	}

	if captureJSON {
		return outputJSON(cmd, capture)
	}

	printCapture(cmd, capture)
	if capture.RawText != "" {
		cmd.Println("\n  Text:")
		cmd.Printf("    %s\n", indent(capture.RawText, "    "))
	}
	return nil
}

func runCaptureDelete(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	if err := captureService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete capture: %w", err)
	}

	cmd.Printf("Deleted capture: %s\n", args[0])
	return nil
}
