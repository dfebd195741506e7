package main

import (
	"github.com/spf13/cobra"

	"github.com/stripwm/stripwm/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP tools on stdio",
	Long: `Serve MCP tools on stdio so AI assistants can inspect and drive the
window manager: get_status, list_windows, run_command and reload_config.
Requires a running daemon.`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer()
	return server.Run(cmd.Context())
}
