package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmelo/ticketstats/internal/model"
)

// Config holds all runtime configuration for a ticketstats run.
type Config struct {
	Files      []string
	LogFormat  string // "text" or "json"
	Verbose    bool
	ConfigPath string

	// Filter selections; empty slices mean "full observed domain".
	Analysts   []string
	Categories []string
	FromDate   string
	ToDate     string

	// From the YAML config file.
	ExtraAliases map[string][]string `yaml:"aliases"`
	SLAMetValue  string              `yaml:"sla_met_value"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Aliases     map[string][]string `yaml:"aliases"`
	SLAMetValue string              `yaml:"sla_met_value"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Aliases must key on known canonical field names.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.ExtraAliases = yc.Aliases
	c.SLAMetValue = yc.SLAMetValue
	return c.validateAliases()
}

// validateAliases checks that every alias key names a canonical field.
func (c *Config) validateAliases() error {
	schema := model.DefaultSchema()
	for canonical := range c.ExtraAliases {
		if _, ok := schema.FieldByCanonical(canonical); !ok {
			return fmt.Errorf("unknown canonical field %q in config aliases", canonical)
		}
	}
	return nil
}

// Schema builds the alias table for this run: the defaults extended with any
// configured aliases and SLA-met override.
func (c *Config) Schema() *model.Schema {
	schema := model.DefaultSchema()
	for canonical, aliases := range c.ExtraAliases {
		schema.ExtendAliases(canonical, aliases)
	}
	if c.SLAMetValue != "" {
		schema.SLAMetValue = c.SLAMetValue
	}
	return schema
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return fmt.Errorf("at least one --file is required")
	}
	for _, f := range c.Files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return nil
}
