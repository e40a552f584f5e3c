package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCompvetMCPServer creates a new MCP server with the compvet tools
// registered. workDir is the directory holding the config file and hash
// registry.
func NewCompvetMCPServer(workDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"compvet",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, workDir)

	return s
}
