// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source kinds for the startup record list.
const (
	SourcePostgres = "db"
	SourceSQLite   = "sqlite"
	SourceURL      = "url"
	SourceFile     = "file"
)

// DefaultFetchLimit matches the page size the directory frontend requests.
const DefaultFetchLimit = 100

// DefaultPort is the REST API port.
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Record source
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`             // One of db, sqlite, url, file
	DatabaseURL string   `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string   `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`   // SQLite database file
	SourceURLs  []string `json:"source_urls,omitempty" yaml:"source_urls,omitempty"`   // Startups API base URLs
	File        string   `json:"file,omitempty" yaml:"file,omitempty"`                 // Path to a JSON record file
	FetchLimit  int      `json:"fetch_limit,omitempty" yaml:"fetch_limit,omitempty"`   // Records requested per source

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Debug logging
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// fields empty so the result can be merged with file values.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		Source:      os.Getenv("STARTUPS_SOURCE"),
		File:        os.Getenv("STARTUPS_FILE"),
	}
	if urls := os.Getenv("STARTUPS_API_URL"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.SourceURLs = append(cfg.SourceURLs, u)
			}
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that the chosen source is fully configured since
// CLI flags may still fill it in; see RequireSource.
func (c *Config) Validate() error {
	switch c.Source {
	case "", SourcePostgres, SourceSQLite, SourceURL, SourceFile:
	default:
		return fmt.Errorf("config error: unknown source %q (want db, sqlite, url or file)", c.Source)
	}

	if c.FetchLimit < 0 {
		return fmt.Errorf("config error: 'fetch_limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.File != "" {
		if _, err := os.Stat(c.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: record file not found: %s", c.File)
		}
	}

	return nil
}

// RequireSource checks that the selected source has the settings it needs.
func (c *Config) RequireSource() error {
	switch c.Source {
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable or 'database_url' is required for source db")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH environment variable or 'sqlite_path' is required for source sqlite")
		}
	case SourceURL:
		if len(c.SourceURLs) == 0 {
			return fmt.Errorf("STARTUPS_API_URL environment variable or 'source_urls' is required for source url")
		}
	case SourceFile:
		if c.File == "" {
			return fmt.Errorf("'file' is required for source file")
		}
	default:
		return fmt.Errorf("no record source configured")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Source == "" {
		result.Source = defaults.Source
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.File == "" {
		result.File = defaults.File
	}
	if len(result.SourceURLs) == 0 {
		result.SourceURLs = append([]string(nil), defaults.SourceURLs...)
	}

	// Int fields: use default if zero
	if result.FetchLimit == 0 {
		if defaults.FetchLimit > 0 {
			result.FetchLimit = defaults.FetchLimit
		} else {
			result.FetchLimit = DefaultFetchLimit
		}
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Source inferred from whatever is configured when not set explicitly
	if result.Source == "" {
		result.Source = inferSource(result)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func inferSource(c Config) string {
	switch {
	case c.File != "":
		return SourceFile
	case len(c.SourceURLs) > 0:
		return SourceURL
	case c.SQLitePath != "":
		return SourceSQLite
	case c.DatabaseURL != "":
		return SourcePostgres
	default:
		return ""
	}
}
