package application

import (
	"fmt"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/catalog"
)

// PatternsService exposes the rule catalog for browsing.
type PatternsService struct {
	catalog *catalog.Catalog
}

func NewPatternsService(c *catalog.Catalog) *PatternsService {
	return &PatternsService{catalog: c}
}

// List returns the catalog, optionally restricted to one category.
func (s *PatternsService) List(category string) ([]domain.Rule, error) {
	if category == "" {
		return s.catalog.All(), nil
	}

	cat := domain.Category(category)
	switch cat {
	case domain.CategoryImports, domain.CategorySyntax, domain.CategoryBuiltins,
		domain.CategoryMethods, domain.CategoryOperators:
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return s.catalog.ByCategory(cat), nil
}

// Search returns rules whose metadata mentions the keyword.
func (s *PatternsService) Search(keyword string) []domain.Rule {
	return s.catalog.Search(keyword)
}

// Get returns a single rule by id.
func (s *PatternsService) Get(id string) (domain.Rule, error) {
	return s.catalog.FindByID(id)
}
