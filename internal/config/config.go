// Package config provides configuration management for the list compiler.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/trufl/Compile-Lists/internal/dataset"
)

// Configuration validation errors.
var (
	ErrMissingMainFolder         = errors.New("folders.main is required")
	ErrMissingSecondaryFolder    = errors.New("folders.secondary is required")
	ErrMissingIntermediateFolder = errors.New("folders.intermediate is required")
	ErrMissingFinalFolder        = errors.New("folders.final is required")
	ErrEmptyMappingTarget        = errors.New("column_mapping target must not be empty")
	ErrInvalidLogLevel           = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidPreviewRows        = errors.New("preview.rows must be at least 1")
)

// Config represents the complete batch runner configuration.
type Config struct {
	Folders       FoldersConfig     `yaml:"folders"`
	ColumnMapping map[string]string `yaml:"column_mapping"`
	Logging       LoggingConfig     `yaml:"logging"`
	Preview       PreviewConfig     `yaml:"preview"`
}

// FoldersConfig names the four working directories of a batch run.
type FoldersConfig struct {
	Main         string `yaml:"main"`
	Secondary    string `yaml:"secondary"`
	Intermediate string `yaml:"intermediate"`
	Final        string `yaml:"final"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PreviewConfig controls the data preview shown before pairing confirmation.
type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
	Rows    int  `yaml:"rows"`
}

// DefaultColumnMapping returns the shipped synonym table applied to
// secondary-source column names before matching.
func DefaultColumnMapping() map[string]string {
	return map[string]string{
		"postal address": "address",
		"email address":  "email",
		"model year":     "year",
		"name":           "first name",
		"customer name":  "first name",
	}
}

// Default returns a configuration with shipped defaults. Folder paths are
// left empty and must be supplied by the caller or a config file.
func Default() *Config {
	return &Config{
		ColumnMapping: DefaultColumnMapping(),
		Logging:       LoggingConfig{Level: "info"},
		Preview:       PreviewConfig{Enabled: true, Rows: 5},
	}
}

// LoadConfig loads configuration from a YAML file, fills in defaults for
// omitted sections, and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.ColumnMapping == nil {
		c.ColumnMapping = DefaultColumnMapping()
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Preview.Rows == 0 {
		c.Preview.Rows = 5
	}
}

// Validate validates the configuration and canonicalizes the column mapping.
func (c *Config) Validate() error {
	if c.Folders.Main == "" {
		return ErrMissingMainFolder
	}

	if c.Folders.Secondary == "" {
		return ErrMissingSecondaryFolder
	}

	if c.Folders.Intermediate == "" {
		return ErrMissingIntermediateFolder
	}

	if c.Folders.Final == "" {
		return ErrMissingFinalFolder
	}

	canonical := make(map[string]string, len(c.ColumnMapping))

	for from, to := range c.ColumnMapping {
		target := dataset.Canonicalize(to)
		if target == "" {
			return fmt.Errorf("%w: %q", ErrEmptyMappingTarget, from)
		}

		canonical[dataset.Canonicalize(from)] = target
	}

	c.ColumnMapping = canonical

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Preview.Enabled && c.Preview.Rows < 1 {
		return ErrInvalidPreviewRows
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Main: %s, Secondary: %s, Mappings: %d}",
		c.Folders.Main,
		c.Folders.Secondary,
		len(c.ColumnMapping),
	)
}
