// SPDX-License-Identifier: Apache-2.0

// Package decoders provides per-format decoders that turn raw metadata
// documents (native JSON-LD API payloads, YAML records, HTML landing pages)
// into metadata Records.
package decoders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/fairscanproj/fairscan/internal/metadata"
)

// fallbackSchema tags records whose document carries no schemaVersion field.
const fallbackSchema = "unversioned"

// JSONLDDecoder decodes the repository's native JSON(-LD) metadata payload.
// Each top-level key becomes one or more Records: list values expand to one
// Record per item, everything else (scalars and nested objects alike) maps
// to a single Record holding the value whole, so structured entries stay
// reachable by their top-level element name.
type JSONLDDecoder struct{}

// NewJSONLDDecoder creates a new JSONLDDecoder.
func NewJSONLDDecoder() *JSONLDDecoder {
	return &JSONLDDecoder{}
}

func (d *JSONLDDecoder) Name() string {
	return "jsonld"
}

// CanHandle returns true for sources with a "jsonld" or "json" format hint,
// or whose content is a JSON object.
func (d *JSONLDDecoder) CanHandle(source metadata.Source) bool {
	switch strings.ToLower(source.Format) {
	case "jsonld", "json-ld", "json":
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(string(source.Content)), "{")
}

func (d *JSONLDDecoder) Decode(_ context.Context, source metadata.Source) ([]metadata.Record, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(source.Content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON-LD document: %w", err)
	}
	// JSON-LD records may wrap the actual document in a json_ld envelope.
	if inner, ok := doc["json_ld"].(map[string]interface{}); ok {
		doc = inner
	}
	return expandDocument(doc), nil
}

// expandDocument flattens a decoded document into Records, tagging every
// record with the document's schemaVersion.
func expandDocument(doc map[string]interface{}) []metadata.Record {
	schema := fallbackSchema
	if v, ok := doc["schemaVersion"].(string); ok && v != "" {
		schema = v
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var records []metadata.Record
	for _, key := range keys {
		switch value := doc[key].(type) {
		case []interface{}:
			for _, item := range value {
				records = append(records, metadata.Record{Schema: schema, Element: key, Value: item})
			}
		default:
			records = append(records, metadata.Record{Schema: schema, Element: key, Value: value})
		}
	}
	return records
}
