package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/py3kit/py3kit/internal/domain"
)

const fileName = ".py3kit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .py3kit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .py3kit.yaml from projectPath. A missing file yields the
// default config (all rules, no ignores).
func (l *YAMLLoader) Load(projectPath string) (domain.MigrationConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.MigrationConfig{}, err
	}

	var cfg domain.MigrationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.MigrationConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.MigrationConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
