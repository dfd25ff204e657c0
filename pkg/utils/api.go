package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// API issues JSON GET requests against a single endpoint.
type API struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

func NewAPI(endpoint string, client *http.Client, userAgent string) *API {
	if client == nil {
		client = http.DefaultClient
	}
	return &API{client: client, endpoint: endpoint, userAgent: userAgent}
}

func (a *API) Endpoint() string {
	return a.endpoint
}

// Get sends params as the query string and decodes a 2xx JSON body into v.
func (a *API) Get(ctx context.Context, params url.Values, v any) error {
	reqURL, err := url.Parse(a.endpoint)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", a.endpoint, err)
	}
	if params != nil {
		reqURL.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
