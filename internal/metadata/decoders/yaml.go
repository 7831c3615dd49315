// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/fairscanproj/fairscan/internal/metadata"
)

// YAMLDecoder decodes YAML metadata records, e.g. exported catalogue entries.
// Expansion semantics are identical to the JSON-LD decoder.
type YAMLDecoder struct{}

func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

func (d *YAMLDecoder) Name() string {
	return "yaml"
}

func (d *YAMLDecoder) CanHandle(source metadata.Source) bool {
	switch strings.ToLower(source.Format) {
	case "yaml", "yml":
		return true
	}
	content := strings.TrimSpace(string(source.Content))
	if content == "" || strings.HasPrefix(content, "{") || strings.HasPrefix(content, "<") {
		return false
	}
	// Plain YAML: key: value on the first line
	return strings.Contains(strings.SplitN(content, "\n", 2)[0], ":")
}

func (d *YAMLDecoder) Decode(_ context.Context, source metadata.Source) ([]metadata.Record, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(source.Content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML document: %w", err)
	}
	return expandDocument(doc), nil
}
