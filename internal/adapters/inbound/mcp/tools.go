package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/compvet/compvet/internal/adapters/outbound/config"
	"github.com/compvet/compvet/internal/adapters/outbound/gitinfo"
	"github.com/compvet/compvet/internal/adapters/outbound/loader"
	registryAdapter "github.com/compvet/compvet/internal/adapters/outbound/registry"
	"github.com/compvet/compvet/internal/application"
	"github.com/compvet/compvet/internal/domain"
)

// registerTools registers all compvet MCP tools on the given server.
func registerTools(s *server.MCPServer, workDir string) {
	// 1. compvet_validate
	s.AddTool(
		mcplib.NewTool("compvet_validate",
			mcplib.WithDescription("Validate a single component file and return its trust report as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the component file"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Promote promotable semantic warnings to errors")),
			mcplib.WithBoolean("update_registry", mcplib.Description("Record the content hash as an intentional change")),
		),
		handleValidate(workDir),
	)

	// 2. compvet_validate_dir
	s.AddTool(
		mcplib.NewTool("compvet_validate_dir",
			mcplib.WithDescription("Validate every component under a directory and return the batch report as JSON"),
			mcplib.WithString("dir",
				mcplib.Required(),
				mcplib.Description("Directory holding components"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Promote promotable semantic warnings to errors")),
			mcplib.WithBoolean("update_registry", mcplib.Description("Record content hashes as intentional changes")),
		),
		handleValidateDir(workDir),
	)

	// 3. compvet_registry
	s.AddTool(
		mcplib.NewTool("compvet_registry",
			mcplib.WithDescription("List the persisted component baselines from the hash registry"),
		),
		handleRegistry(workDir),
	)
}

// newOrchestrator builds the standard adapter set rooted at workDir.
func newOrchestrator(workDir string) (*application.Orchestrator, *registryAdapter.Store, error) {
	cfg, err := config.New().Load(workDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := openRegistry(workDir, cfg)
	if err != nil {
		return nil, nil, err
	}

	return application.NewOrchestrator(cfg, store), store, nil
}

func openRegistry(workDir string, cfg domain.ToolConfig) (*registryAdapter.Store, error) {
	registryPath := cfg.RegistryPath
	if registryPath == "" {
		registryPath = registryAdapter.DefaultPath
	}
	if !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(workDir, registryPath)
	}

	store, err := registryAdapter.Open(registryPath)
	if err != nil {
		return nil, fmt.Errorf("opening hash registry: %w", err)
	}
	return store, nil
}

func handleValidate(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		orch, _, err := newOrchestrator(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		c, err := loader.New(gitinfo.New()).Load(path)
		if err != nil {
			return errorResult(fmt.Sprintf("loading component: %v", err)), nil
		}

		report := orch.ValidateBatch([]domain.Component{*c}, optionsFrom(request))
		return jsonResult(report.Components[0])
	}
}

func handleValidateDir(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		orch, _, err := newOrchestrator(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		components, err := loader.New(gitinfo.New()).LoadDir(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading components: %v", err)), nil
		}

		report := orch.ValidateBatch(components, optionsFrom(request))
		return jsonResult(report)
	}
}

func handleRegistry(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		store, err := openRegistry(workDir, cfg)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		return jsonResult(store.Entries())
	}
}

func optionsFrom(request mcplib.CallToolRequest) domain.Options {
	args := request.GetArguments()
	strict, _ := args["strict"].(bool)
	update, _ := args["update_registry"].(bool)
	return domain.Options{Strict: strict, UpdateRegistry: update}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
