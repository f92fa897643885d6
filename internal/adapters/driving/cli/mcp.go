package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/mcp"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose shotbrain to AI assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server so assistants can classify
screenshot text and read stored captures.

Tools:      analyse_text, list_captures
Resources:  shotbrain://captures, shotbrain://captures/{captureId}

The server speaks JSON-RPC on stdio unless --port is given, in which case
it serves streamable HTTP on host:port.

Examples:
  shotbrain mcp serve
  shotbrain mcp serve --port 8080
  shotbrain mcp serve --host 0.0.0.0 --port 8080

To register with a desktop assistant, point its MCP config at the binary:
  { "mcpServers": { "shotbrain": { "command": "shotbrain", "args": ["mcp", "serve"] } } }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpAddr validates the port flag and joins it with the host.
func mcpAddr(host string, port int) (string, error) {
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("port %d out of range: %w", port, domain.ErrInvalidInput)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Analysis: analysisService,
		Capture:  captureService,
		Actions:  actionService,
	})
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr, err := mcpAddr(mcpHost, mcpPort)
	if err != nil {
		return err
	}
	cmd.Printf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
