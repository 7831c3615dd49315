// SPDX-License-Identifier: Apache-2.0

package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// ErrNoRegistry is returned when a standards lookup is requested but no
// registry client is configured.
var ErrNoRegistry = errors.New("no standards registry configured")

// StandardEntry is one record returned by the standards registry.
type StandardEntry struct {
	Name         string
	Abbreviation string
}

// RegistryClient looks up community standards in a cross-domain registry
// such as FAIRsharing.
type RegistryClient interface {
	LookupStandard(ctx context.Context, query string) ([]StandardEntry, error)
}

// HTTPRegistryClient queries a FAIRsharing-style records API.
type HTTPRegistryClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPRegistryClient creates a client for the given registry API base
// URL, e.g. https://api.fairsharing.org.
func NewHTTPRegistryClient(baseURL, apiKey string, httpClient *http.Client, logger *zap.Logger) *HTTPRegistryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPRegistryClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// registryResponse mirrors the registry's JSON payload shape:
// {"data": [{"attributes": {"name": ..., "abbreviation": ...}}]}.
type registryResponse struct {
	Data []struct {
		Attributes struct {
			Name         string `json:"name"`
			Abbreviation string `json:"abbreviation"`
		} `json:"attributes"`
	} `json:"data"`
}

func (c *HTTPRegistryClient) LookupStandard(ctx context.Context, query string) ([]StandardEntry, error) {
	lookupURL := fmt.Sprintf("%s/search/fairsharing_records?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying standards registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("standards registry returned status %d for query %q", resp.StatusCode, query)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading registry response: %w", err)
	}

	var payload registryResponse
	if err := yaml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}

	entries := make([]StandardEntry, 0, len(payload.Data))
	for _, item := range payload.Data {
		entries = append(entries, StandardEntry{
			Name:         item.Attributes.Name,
			Abbreviation: item.Attributes.Abbreviation,
		})
	}
	c.logger.Debug("standards registry lookup",
		zap.String("query", query),
		zap.Int("entries", len(entries)))
	return entries, nil
}
