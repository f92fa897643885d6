// Package driving holds the service interfaces the CLI, TUI, MCP server
// and directory watcher call into. internal/core/services implements them.
package driving
