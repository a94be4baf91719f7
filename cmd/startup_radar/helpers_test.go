package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "total": 3,
  "startups": [
    {"id": 1, "name": "Acme", "description": "<p>Payments for <b>fintech</b> teams</p>", "stage": "$15M Series A", "location": "NYC", "company_size": "11-50", "industry": "Fintech"},
    {"id": 2, "name": "Beta", "description": "devtools", "stage": "Seed $1M", "location": "SF", "company_size": "1-10", "industry": "Developer Tools"},
    {"id": 3, "name": "Cobalt", "stage": "Growth Equity", "location": "NYC", "industry": "Climate"}
  ]
}`

// isolateEnv clears the variables config.FromEnv reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "SQLITE_PATH", "STARTUPS_SOURCE", "STARTUPS_FILE", "STARTUPS_API_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("RATE_LIMIT_ENABLED", "false")
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "startups.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))
	return path
}

// execute runs the CLI in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
