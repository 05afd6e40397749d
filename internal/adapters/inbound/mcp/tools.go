package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/py3kit/py3kit/internal/application"
)

// registerTools registers all py3kit MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *services, projectPath string) {
	// 1. py3kit_check
	s.AddTool(
		mcplib.NewTool("py3kit_check",
			mcplib.WithDescription("Scan the project tree for Python-2-only constructs and return the full report as JSON. Read-only."),
		),
		handleCheck(svc, projectPath),
	)

	// 2. py3kit_check_file
	s.AddTool(
		mcplib.NewTool("py3kit_check_file",
			mcplib.WithDescription("Return the Python 2 findings for a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, relative to the project root"),
			),
		),
		handleCheckFile(svc, projectPath),
	)

	// 3. py3kit_fix
	s.AddTool(
		mcplib.NewTool("py3kit_fix",
			mcplib.WithDescription("Rewrite Python 2 constructs in the project tree to their Python 3 form. Changed files are backed up under .py3kit/backups/ first."),
			mcplib.WithBoolean("dry_run", mcplib.Description("Compute rewrites without touching any file")),
			mcplib.WithString("rules", mcplib.Description("Comma-separated rule ids to restrict the run to")),
		),
		handleFix(svc, projectPath),
	)

	// 4. py3kit_patterns
	s.AddTool(
		mcplib.NewTool("py3kit_patterns",
			mcplib.WithDescription("Browse the migration rule catalog"),
			mcplib.WithString("category", mcplib.Description("Restrict to one category (imports, methods, builtins, operators, syntax)")),
			mcplib.WithString("keyword", mcplib.Description("Search the catalog by keyword")),
		),
		handlePatterns(svc),
	)
}

func handleCheck(svc *services, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.verify.VerifyTree(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckFile(svc *services, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		findings, err := svc.verify.VerifyFile(filepath.Join(projectPath, file))
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}

		return jsonResult(struct {
			File     string `json:"file"`
			Findings any    `json:"findings"`
		}{File: file, Findings: findings})
	}
}

func handleFix(svc *services, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		dryRun, _ := args["dry_run"].(bool)

		opts := application.FixOptions{DryRun: dryRun}
		if rules, ok := args["rules"].(string); ok && rules != "" {
			opts.RuleIDs = splitAndTrim(rules)
		}

		report, err := svc.fix.FixTree(projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handlePatterns(svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		if keyword, ok := args["keyword"].(string); ok && keyword != "" {
			return jsonResult(svc.patterns.Search(keyword))
		}

		category, _ := args["category"].(string)
		rules, err := svc.patterns.List(category)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(rules)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
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
