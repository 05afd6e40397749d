package cli

import (
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

// services wires the standard adapter set behind the application layer.
// Building it validates the rule catalog, so every command fails fast on a
// broken rule table.
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
