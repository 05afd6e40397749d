package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/py3kit/py3kit/internal/adapters/outbound/history"
)

// registerResources registers all py3kit MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *services, projectPath string) {
	// 1. py3kit://patterns - the full rule catalog
	s.AddResource(
		mcplib.NewResource(
			"py3kit://patterns",
			"Pattern Catalog",
			mcplib.WithResourceDescription("Every known Python 2 pattern with its Python 3 form"),
			mcplib.WithMIMEType("application/json"),
		),
		handlePatternsResource(svc),
	)

	// 2. py3kit://history - recorded check/fix runs
	s.AddResource(
		mcplib.NewResource(
			"py3kit://history",
			"Run History",
			mcplib.WithResourceDescription("Recorded check and fix runs for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)

	// 3. py3kit://patterns/{id} - one rule in full (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"py3kit://patterns/{id}",
			"Pattern",
			mcplib.WithTemplateDescription("A single migration rule with explanation and example"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handlePatternResource(svc),
	)
}

func handlePatternsResource(svc *services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		rules, err := svc.patterns.List("")
		if err != nil {
			return nil, err
		}
		return jsonContents("py3kit://patterns", rules)
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return jsonContents("py3kit://history", entries)
	}
}

func handlePatternResource(svc *services) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id, ok := request.Params.Arguments["id"].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("rule id is required")
		}

		rule, err := svc.patterns.Get(id)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, rule)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
