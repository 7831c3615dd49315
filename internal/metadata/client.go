// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Client retrieves raw metadata documents from the repository's REST API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client for the given API endpoint, e.g.
// https://repository.example.org/api/v1.
func NewClient(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint returns the configured API endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchRecord retrieves the extended metadata document for the given item
// identifier. It returns the raw document as a Source plus the response
// headers, which carry the serialization media type used later by the
// machine-understandability indicator. A transport error, a non-2xx status
// or an empty body aborts the evaluation.
func (c *Client) FetchRecord(ctx context.Context, itemID string) (Source, http.Header, error) {
	fetchURL := fmt.Sprintf("%s/resources/details/%s?extended=true", c.endpoint, url.PathEscape(itemID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return Source{}, nil, fmt.Errorf("building metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Source{}, nil, fmt.Errorf("connecting to metadata repository %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Source{}, nil, fmt.Errorf("error while connecting to metadata repository: %s (status code: %d)", fetchURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Source{}, nil, fmt.Errorf("reading metadata response from %s: %w", fetchURL, err)
	}
	if len(body) == 0 {
		return Source{}, nil, fmt.Errorf("empty metadata received from metadata repository: %s", fetchURL)
	}

	c.logger.Debug("fetched metadata record",
		zap.String("url", fetchURL),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Int("bytes", len(body)))

	return Source{Content: body, Format: "jsonld", ID: itemID}, resp.Header, nil
}
