package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/startup-radar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartupsServer(t *testing.T, records []types.Startup) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/startups" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.StartupList{Total: len(records), Startups: records})
	}))
}

func TestStartupsURL(t *testing.T) {
	u, err := StartupsURL("http://localhost:8000/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/startups?limit=100", u)

	u, err = StartupsURL("https://api.example.com", 25)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api/startups?limit=25", u)
}

func TestStartups(t *testing.T) {
	server := newStartupsServer(t, []types.Startup{
		{ID: 1, Name: "Acme", Description: "<p>Payments</p>", Stage: "$15M Series A", Location: "NYC"},
		{ID: 2, Name: "Beta", Stage: "Seed $1M"},
	})
	defer server.Close()

	records, err := Startups(context.Background(), server.URL, 10, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Payments", records[0].Description)
	assert.Equal(t, "NYC", records[0].Location)
	assert.Equal(t, "Seed $1M", records[1].Stage)
}

func TestStartups_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := Startups(context.Background(), server.URL, 10, nil)
	require.Error(t, err)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "decode")
}

func TestLoadAll_MergesInSourceOrder(t *testing.T) {
	first := newStartupsServer(t, []types.Startup{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Beta"}})
	defer first.Close()
	second := newStartupsServer(t, []types.Startup{{ID: 2, Name: "Beta (dup)"}, {ID: 3, Name: "Cobalt"}})
	defer second.Close()

	records, err := LoadAll(context.Background(), []string{first.URL, second.URL}, 0, nil)
	require.NoError(t, err)

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Acme", "Beta", "Cobalt"}, names)
}

func TestLoadAll_FailsOnAnySource(t *testing.T) {
	ok := newStartupsServer(t, []types.Startup{{ID: 1, Name: "Acme"}})
	defer ok.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, err := LoadAll(context.Background(), []string{ok.URL, broken.URL}, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestLoadAll_NoSources(t *testing.T) {
	records, err := LoadAll(context.Background(), nil, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeStartups(t *testing.T) {
	records, err := DecodeStartups([]byte(` [{"id": 1, "name": "Acme", "company_size": null}] `))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].CompanySize)

	records, err = DecodeStartups([]byte(`{"total": 1, "startups": [{"id": 2, "name": "Beta"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].ID)

	_, err = DecodeStartups([]byte("   "))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "startups.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"total": 1, "startups": [{"id": 1, "name": "Acme", "description": "<b>fintech</b>"}]}`), 0644))
	records, err := LoadFile(valid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fintech", records[0].Description)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[{"id": "x"}]`), 0644))
	_, err = LoadFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
