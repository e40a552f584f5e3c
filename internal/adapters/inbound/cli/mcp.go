package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/compvet/compvet/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the compvet MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start compvet MCP server (stdio)",
		Long: "Start the compvet MCP server using stdio transport. This lets AI coding " +
			"assistants validate components and inspect the hash registry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDir == "" {
				workDir = "."
			}
			s := mcpadapter.NewCompvetMCPServer(workDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workDir, "path", "", "Working directory (defaults to current directory)")

	return cmd
}
