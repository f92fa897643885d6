package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions [capture-id] [n]",
	Short: "List or perform the actions of a capture",
	Long: `Lists the action offered for each block of a capture. Given a block
number, performs that action: open the link, dial the number, show
directions, add the event to the calendar or copy the text.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runActions,
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	if captureService == nil || actionService == nil {
		return errors.New("action service not configured")
	}

	ctx := cmd.Context()
	capture, err := captureService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get capture: %w", err)
	}

	actions := actionService.For(capture)
	if len(actions) == 0 {
		cmd.Println("No actions available.")
		return nil
	}

	if len(args) == 1 {
		cmd.Printf("Actions for %s:\n\n", capture.Title)
		for i, a := range actions {
			cmd.Printf("  %d. %-16s %s\n", i+1, a.Label, firstLine(a.Text))
		}
		return nil
	}

	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(actions) {
		return fmt.Errorf("invalid action number %q: choose 1-%d", args[1], len(actions))
	}

	action := actions[n-1]
	if err := actionService.Perform(ctx, action); err != nil {
		return fmt.Errorf("action failed: %w", err)
	}

	if action.Opens() {
		cmd.Printf("%s: %s\n", action.Label, action.Target)
	} else {
		cmd.Println("Copied to clipboard.")
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " …"
		}
	}
	return s
}
