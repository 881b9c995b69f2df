package target

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"catalog-sync/core/source"
)

// httpClient talks to the target platform's admin API over HTTP/JSON.
// Throttling is signaled with 429 plus an optional budget report in the
// body; 5xx and network failures surface as *TransportError.
type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates the HTTP admin API client. Callers normally wrap it
// in a Limiter rather than using it directly.
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

// throttleBody is the budget report attached to 429 responses.
type throttleBody struct {
	Available   *float64 `json:"available"`
	RestoreRate *float64 `json:"restore_rate"`
}

func (c *httpClient) LookupByNaturalKey(ctx context.Context, kind source.Kind, key string) (string, error) {
	u := fmt.Sprintf("%s/admin/%s/lookup?key=%s", c.cfg.BaseURL, kind, url.QueryEscape(key))
	resp, err := c.do(ctx, "lookup", http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if err := c.checkStatus("lookup", resp); err != nil {
		return "", err
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TransportError{Op: "lookup", Err: fmt.Errorf("decode response: %w", err)}
	}
	return body.ID, nil
}

func (c *httpClient) EnumerateIDs(ctx context.Context, kind source.Kind, cursor string) (*IDPage, error) {
	u := fmt.Sprintf("%s/admin/%s/ids", c.cfg.BaseURL, kind)
	if cursor != "" {
		u += "?cursor=" + url.QueryEscape(cursor)
	}
	resp, err := c.do(ctx, "enumerate", http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus("enumerate", resp); err != nil {
		return nil, err
	}

	var page IDPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &TransportError{Op: "enumerate", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &page, nil
}

func (c *httpClient) Create(ctx context.Context, kind source.Kind, payload Payload) (*MutationResult, error) {
	u := fmt.Sprintf("%s/admin/%s", c.cfg.BaseURL, kind)
	return c.mutate(ctx, "create", http.MethodPost, u, payload)
}

func (c *httpClient) Update(ctx context.Context, kind source.Kind, targetID string, payload Payload) (*MutationResult, error) {
	u := fmt.Sprintf("%s/admin/%s/%s", c.cfg.BaseURL, kind, url.PathEscape(targetID))
	return c.mutate(ctx, "update", http.MethodPut, u, payload)
}

func (c *httpClient) Delete(ctx context.Context, kind source.Kind, targetID string) (bool, error) {
	u := fmt.Sprintf("%s/admin/%s/%s", c.cfg.BaseURL, kind, url.PathEscape(targetID))
	resp, err := c.do(ctx, "delete", http.MethodDelete, u, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := c.checkStatus("delete", resp); err != nil {
		return false, err
	}
	return true, nil
}

func (c *httpClient) mutate(ctx context.Context, op, method, u string, payload Payload) (*MutationResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", op, err)
	}

	resp, err := c.do(ctx, op, method, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 422 carries user errors in the same result shape.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusUnprocessableEntity {
		if err := c.checkStatus(op, resp); err != nil {
			return nil, err
		}
	}

	var result MutationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &result, nil
}

func (c *httpClient) do(ctx context.Context, op, method, u string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("X-Access-Token", c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		defer resp.Body.Close()
		var tb throttleBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&tb); decodeErr == nil &&
			tb.Available != nil && tb.RestoreRate != nil {
			return nil, &ThrottledError{Available: *tb.Available, RestoreRate: *tb.RestoreRate}
		}
		return nil, ErrThrottled
	}
	return resp, nil
}

func (c *httpClient) checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &TransportError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("%s", string(body)),
	}
}
