package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/py3kit/py3kit/internal/adapters/outbound/backup"
	"github.com/py3kit/py3kit/internal/adapters/outbound/cache"
	"github.com/py3kit/py3kit/internal/adapters/outbound/config"
	"github.com/py3kit/py3kit/internal/adapters/outbound/gitinfo"
	"github.com/py3kit/py3kit/internal/adapters/outbound/history"
	"github.com/py3kit/py3kit/internal/adapters/outbound/scanner"
	"github.com/py3kit/py3kit/internal/application"
	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/catalog"
	"github.com/py3kit/py3kit/internal/domain/engine"
)

// NewPy3kitMCPServer creates a new MCP server with all py3kit tools and
// resources registered. The projectPath is the root directory of the project
// to migrate. Building the server validates the rule catalog.
func NewPy3kitMCPServer(projectPath string) (*server.MCPServer, error) {
	svc, err := newServices()
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"py3kit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, projectPath)
	registerResources(s, svc, projectPath)

	return s, nil
}

// services bundles the application layer behind one wiring point shared by
// every tool and resource handler.
type services struct {
	verify   *application.VerifyService
	fix      *application.FixService
	patterns *application.PatternsService
}

func newServices() (*services, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, err
	}

	eng := engine.New(cat.All())
	sc := scanner.New()
	cfg := config.New()
	git := gitinfo.New()
	hist := history.New()

	newCache := func(projectPath string) domain.VerifyCache {
		return cache.New(projectPath, cat.Fingerprint())
	}
	newBackups := func(projectPath string) domain.BackupStore {
		return backup.New(projectPath)
	}

	return &services{
		verify:   application.NewVerifyService(eng, sc, cfg, git, hist, newCache),
		fix:      application.NewFixService(eng, sc, cfg, git, hist, newBackups),
		patterns: application.NewPatternsService(cat),
	}, nil
}
