// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-yaml"

	"github.com/fairscanproj/fairscan/internal/metadata"
)

// LandingPageDecoder extracts the JSON-LD record embedded in a data
// product's HTML landing page (a script tag with type application/ld+json).
// Repositories that publish their metadata this way are harvestable by web
// search engines, so presence of the embedded record also feeds the manual
// metadata access indicator.
type LandingPageDecoder struct{}

func NewLandingPageDecoder() *LandingPageDecoder {
	return &LandingPageDecoder{}
}

func (d *LandingPageDecoder) Name() string {
	return "landing-page"
}

// CanHandle returns true for sources with an "html" or "landing" format
// hint, or whose content looks like an HTML document.
func (d *LandingPageDecoder) CanHandle(source metadata.Source) bool {
	switch strings.ToLower(source.Format) {
	case "html", "landing", "landing-page":
		return true
	}
	content := strings.TrimSpace(string(source.Content))
	lower := strings.ToLower(content)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}

func (d *LandingPageDecoder) Decode(_ context.Context, source metadata.Source) ([]metadata.Record, error) {
	blocks, err := ExtractJSONLD(source.Content)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no JSON-LD record found in landing page %q", source.ID)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(blocks[0]), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded JSON-LD: %w", err)
	}
	return expandDocument(doc), nil
}

// ExtractJSONLD returns the raw contents of every
// script[type=application/ld+json] tag in the given HTML document.
func ExtractJSONLD(html []byte) ([]string, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse landing page HTML: %w", err)
	}

	var blocks []string
	page.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks, nil
}
