// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WebProbe checks link resolvability and fetches landing pages for the
// access indicators. Satisfiable by a test double.
type WebProbe interface {
	// CheckLink reports whether the URL resolves to a non-error response.
	CheckLink(ctx context.Context, rawURL string) bool
	// FetchPage retrieves the page body at the URL.
	FetchPage(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPProbe is the production WebProbe.
type HTTPProbe struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPProbe creates an HTTPProbe. A nil client gets a default with a
// request timeout; a nil logger is replaced with a no-op one.
func NewHTTPProbe(client *http.Client, logger *zap.Logger) *HTTPProbe {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPProbe{client: client, logger: logger}
}

// CheckLink reports whether a GET on the URL succeeds with a status below
// 400. Network errors count as unresolvable, not as faults.
func (p *HTTPProbe) CheckLink(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		p.logger.Warn("link check skipped, invalid URL", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("link is not resolvable", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

// FetchPage retrieves the body at the URL.
func (p *HTTPProbe) FetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building page request for %s: %w", rawURL, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching page %s: unexpected status %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", rawURL, err)
	}
	return body, nil
}
