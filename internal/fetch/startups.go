package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/startup-radar/internal/schemas"
	"github.com/jonathan/startup-radar/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the number of records requested from a startups API.
const DefaultLimit = 100

// StartupsURL builds the list endpoint for an API base URL.
func StartupsURL(baseURL string, limit int) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/api/startups")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Startups fetches the record list from one startups API.
func Startups(ctx context.Context, baseURL string, limit int, opts *Options) ([]types.Startup, error) {
	endpoint, err := StartupsURL(baseURL, limit)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = DefaultOptions()
	}
	withAccept := *opts
	withAccept.Headers = map[string]string{"Accept": "application/json"}
	for k, v := range opts.Headers {
		withAccept.Headers[k] = v
	}

	result, err := URL(ctx, endpoint, &withAccept)
	if err != nil {
		return nil, err
	}

	records, err := DecodeStartups(result.Body)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to decode startups", Cause: err}
	}
	return CleanStartups(records), nil
}

// LoadAll fetches every base URL concurrently and concatenates the results in
// the order of baseURLs. A record ID seen in an earlier source wins. The first
// failure cancels the remaining fetches.
func LoadAll(ctx context.Context, baseURLs []string, limit int, opts *Options) ([]types.Startup, error) {
	perSource := make([][]types.Startup, len(baseURLs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, base := range baseURLs {
		g.Go(func() error {
			records, err := Startups(gCtx, base, limit, opts)
			if err != nil {
				return err
			}
			perSource[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var merged []types.Startup
	for _, records := range perSource {
		for _, rec := range records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			merged = append(merged, rec)
		}
	}
	return merged, nil
}

// LoadFile reads a record file, validates it against the startups schema and
// decodes it.
func LoadFile(path string) ([]types.Startup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", path, err)
	}
	if err := schemas.ValidateStartups(data); err != nil {
		return nil, fmt.Errorf("record file %s is invalid: %w", path, err)
	}
	records, err := DecodeStartups(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode record file %s: %w", path, err)
	}
	return CleanStartups(records), nil
}

// DecodeStartups accepts either a bare JSON array of records or the
// {"total": n, "startups": [...]} envelope.
func DecodeStartups(data []byte) ([]types.Startup, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] == '[' {
		var records []types.Startup
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var list types.StartupList
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	return list.Startups, nil
}

// CleanStartups strips markup from scraped descriptions. Facet fields are left
// exactly as delivered since selections match them verbatim. The slice is
// modified in place and returned.
func CleanStartups(records []types.Startup) []types.Startup {
	for i := range records {
		records[i].Description = HTMLToText(records[i].Description)
	}
	return records
}
