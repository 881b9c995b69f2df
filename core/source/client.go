package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Record is a raw source document as returned by the export API.
// Kind adapters convert records into typed entities.
type Record map[string]any

// Page is one page of raw records plus the cursor for the next page.
// An empty NextCursor means the sequence is exhausted.
type Page struct {
	Records    []Record `json:"records"`
	NextCursor string   `json:"next_cursor"`
}

// Client pulls paginated records from the source system, one resource
// per entity kind. The sequence is finite and restartable per kind.
type Client interface {
	// List fetches one page of records for the named resource.
	// An empty cursor starts from the beginning.
	List(ctx context.Context, resource, cursor string, limit int) (*Page, error)
}

// FetchError wraps a failure to enumerate source records. It aborts the
// current kind's pass but not the overall run.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source fetch for %s failed: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates an HTTP client for the source export API.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

func (c *httpClient) List(ctx context.Context, resource, cursor string, limit int) (*Page, error) {
	u, err := url.Parse(c.cfg.BaseURL + "/export/" + resource)
	if err != nil {
		return nil, &FetchError{Resource: resource, Err: err}
	}
	q := u.Query()
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Resource: resource, Err: err}
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Resource: resource,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &FetchError{Resource: resource, Err: fmt.Errorf("decode page: %w", err)}
	}
	return &page, nil
}
