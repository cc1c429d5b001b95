package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Ingest   IngestConfig   `json:"ingest" yaml:"ingest"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}

// DatabaseConfig locates the SQLite journal
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// IngestConfig contains parsing parameters
type IngestConfig struct {
	// Timezone is the fallback zone for simple-format exports whose
	// timestamps carry no offset. Futures exports are always UTC+8.
	Timezone string `json:"timezone" yaml:"timezone"`
	// SkipProcessed skips files already recorded in the journal when
	// importing a folder.
	SkipProcessed bool `json:"skip_processed" yaml:"skip_processed"`
}

// ReportConfig contains presentation parameters
type ReportConfig struct {
	// PositionsPerPage caps table listings; 0 means everything.
	PositionsPerPage int `json:"positions_per_page" yaml:"positions_per_page"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Ingest.Timezone != "" {
		if _, err := time.LoadLocation(c.Ingest.Timezone); err != nil {
			return fmt.Errorf("unknown ingest.timezone: %s", c.Ingest.Timezone)
		}
	}
	if c.Report.PositionsPerPage < 0 {
		return fmt.Errorf("report.positions_per_page must not be negative")
	}
	return nil
}

// Location resolves the fallback ingest timezone, defaulting to UTC.
func (c *Config) Location() *time.Location {
	if c.Ingest.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Ingest.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./journal.sqlite",
		},
		Ingest: IngestConfig{
			Timezone:      "UTC",
			SkipProcessed: true,
		},
		Report: ReportConfig{
			PositionsPerPage: 100,
		},
	}
}
