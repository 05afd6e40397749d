package domain

import "fmt"

// MigrationConfig is project-level configuration loaded from .py3kit.yaml.
type MigrationConfig struct {
	// Ignore lists glob patterns (matched against slash-separated relative
	// paths) excluded from tree walks, in addition to built-in skip dirs.
	Ignore []string `yaml:"ignore" json:"ignore,omitempty"`

	Rules RuleSelection `yaml:"rules" json:"rules,omitempty"`

	// Workers bounds the tree-walk worker pool. 0 means sequential.
	Workers int `yaml:"workers" json:"workers,omitempty"`
}

// RuleSelection enables or disables rules by id. An empty Enabled list means
// every rule; Disabled wins over Enabled.
type RuleSelection struct {
	Enabled  []string `yaml:"enabled"  json:"enabled,omitempty"`
	Disabled []string `yaml:"disabled" json:"disabled,omitempty"`
}

// DefaultConfig returns a zero-value config: all rules, no ignores,
// sequential walk.
func DefaultConfig() MigrationConfig {
	return MigrationConfig{}
}

// RuleEnabled reports whether the selection admits the given rule id.
func (c MigrationConfig) RuleEnabled(id string) bool {
	for _, d := range c.Rules.Disabled {
		if d == id {
			return false
		}
	}
	if len(c.Rules.Enabled) == 0 {
		return true
	}
	for _, e := range c.Rules.Enabled {
		if e == id {
			return true
		}
	}
	return false
}

// Validate checks structural validity. Rule ids are validated against the
// catalog by the caller, since the domain config cannot see the rule table.
func (c MigrationConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	for i, p := range c.Ignore {
		if p == "" {
			return fmt.Errorf("ignore[%d] must not be empty", i)
		}
	}
	return nil
}
