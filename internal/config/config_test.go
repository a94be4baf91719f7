package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"source": "url",
		"source_urls": ["https://api.example.com"],
		"fetch_limit": 50,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, SourceURL, cfg.Source)
	assert.Equal(t, []string{"https://api.example.com"}, cfg.SourceURLs)
	assert.Equal(t, 50, cfg.FetchLimit)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := `
source: sqlite
sqlite_path: /tmp/startups.db
port: 8181
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.Source)
	assert.Equal(t, "/tmp/startups.db", cfg.SQLitePath)
	assert.Equal(t, 8181, cfg.Port)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("port: [unterminated"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "startups.json")
	require.NoError(t, os.WriteFile(existing, []byte("[]"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config", Config{}, ""},
		{"known source", Config{Source: SourceFile, File: existing}, ""},
		{"unknown source", Config{Source: "ftp"}, "unknown source"},
		{"negative limit", Config{FetchLimit: -1}, "fetch_limit"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"missing file", Config{File: "/nonexistent/startups.json"}, "record file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireSource(t *testing.T) {
	assert.Error(t, (&Config{}).RequireSource())
	assert.Error(t, (&Config{Source: SourcePostgres}).RequireSource())
	assert.NoError(t, (&Config{Source: SourcePostgres, DatabaseURL: "postgres://localhost/db"}).RequireSource())
	assert.Error(t, (&Config{Source: SourceURL}).RequireSource())
	assert.NoError(t, (&Config{Source: SourceURL, SourceURLs: []string{"http://x"}}).RequireSource())
	assert.Error(t, (&Config{Source: SourceSQLite}).RequireSource())
	assert.Error(t, (&Config{Source: SourceFile}).RequireSource())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000}
	merged := cfg.MergeWithDefaults(Config{
		DatabaseURL: "postgres://localhost/startups",
		Port:        7000,
	})

	assert.Equal(t, 9000, merged.Port, "explicit value wins")
	assert.Equal(t, "postgres://localhost/startups", merged.DatabaseURL)
	assert.Equal(t, DefaultFetchLimit, merged.FetchLimit)
	assert.Equal(t, SourcePostgres, merged.Source, "source inferred from database_url")
	assert.Equal(t, 0, cfg.FetchLimit, "receiver untouched")
}

func TestMergeWithDefaults_InferSourcePriority(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{
		DatabaseURL: "postgres://localhost/startups",
		SourceURLs:  []string{"https://api.example.com"},
	})
	assert.Equal(t, SourceURL, merged.Source)
	assert.Equal(t, DefaultPort, merged.Port)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("STARTUPS_API_URL", "https://a.example.com, https://b.example.com,")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("STARTUPS_SOURCE", "")
	t.Setenv("STARTUPS_FILE", "")

	cfg := FromEnv()
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.SourceURLs)
	assert.Empty(t, cfg.SQLitePath)
}
