package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04"

// isTerminal reports whether stream, either end of a command's stdio, is an
// interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// badge renders a category label, coloured on terminals.
func badge(cmd *cobra.Command, c domain.Category) string {
	label := "[" + c.Description() + "]"
	if !isTerminal(cmd.OutOrStdout()) {
		return label
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.CategoryColor(c)).
		Render(label)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printCapture writes the detail view of a capture.
func printCapture(cmd *cobra.Command, c *domain.Capture) {
	if c.ID != "" {
		cmd.Printf("Capture %s %s\n\n", shortID(c.ID), badge(cmd, c.Category))
	} else {
		cmd.Printf("Preview %s\n\n", badge(cmd, c.Category))
	}

	cmd.Printf("  Title:     %s\n", c.Title)
	if c.ExtractedContent != "" {
		cmd.Printf("  Content:   %s\n", indent(c.ExtractedContent, "             "))
	}
	if c.EventTime != nil {
		cmd.Printf("  Event:     %s\n", c.EventTime.Local().Format(timeLayout))
	}
	if c.ImagePath != "" {
		cmd.Printf("  Image:     %s\n", c.ImagePath)
	}
	if !c.CapturedAt.IsZero() {
		cmd.Printf("  Captured:  %s\n", c.CapturedAt.Local().Format(timeLayout))
	}

	if len(c.Blocks) == 0 {
		return
	}
	cmd.Println("\n  Blocks:")
	for i, b := range c.Blocks {
		line := fmt.Sprintf("    %d. [%s] %s", i+1, b.Kind.Label(), indent(b.Content, "       "))
		if actionService != nil {
			a := actionService.ForBlock(c, b)
			line += "  → " + a.Label
		}
		cmd.Println(line)
	}
}

// printCaptureLine writes the one-line list form of a capture.
func printCaptureLine(cmd *cobra.Command, c *domain.Capture) {
	cmd.Printf("  %s  %s  %s %s\n",
		shortID(c.ID),
		c.CapturedAt.Local().Format(timeLayout),
		badge(cmd, c.Category),
		c.Title,
	)
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
