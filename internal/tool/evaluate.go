// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the evaluation pipeline as an MCP tool.
package tool

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/config"
	"github.com/fairscanproj/fairscan/internal/indicator"
	"github.com/fairscanproj/fairscan/internal/metadata"
)

// MetadataEvaluateFairIndicators describes the evaluate_fair_indicators tool.
var MetadataEvaluateFairIndicators = &mcp.Tool{
	Name: "evaluate_fair_indicators",
	Description: "Evaluate a data product's metadata record against the RDA FAIR compliance " +
		"indicators and return per-indicator scores (0-100) with human-readable justifications. " +
		"Supported metadata formats: json-ld, yaml, html (landing page with embedded JSON-LD). " +
		"Scores cover the Findable, Accessible, Interoperable and Reusable indicator families; " +
		"each result lists the messages explaining the score.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the metadata document to evaluate",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for the document. One of: jsonld, yaml, html. If omitted, auto-detection is used.",
				"enum":        []string{"jsonld", "yaml", "html"},
			},
			"item_id": map[string]interface{}{
				"type":        "string",
				"description": "Identifier or landing-page URL of the evaluation subject, used in result messages and the landing-page checks.",
			},
			"config": map[string]interface{}{
				"type":        "string",
				"description": "Optional YAML evaluation configuration (term map, vocabularies, access policy). A built-in JSON-LD oriented configuration is used when omitted.",
			},
			"content_type": map[string]interface{}{
				"type":        "string",
				"description": "Optional media type the metadata document was served with, used by the machine-understandability indicator.",
			},
		},
	},
}

// InputEvaluateFairIndicators is the input for the EvaluateFairIndicators tool.
type InputEvaluateFairIndicators struct {
	Content     string `json:"content"`
	Format      string `json:"format"`
	ItemID      string `json:"item_id"`
	Config      string `json:"config"`
	ContentType string `json:"content_type"`
}

// OutputEvaluateFairIndicators is the output for the EvaluateFairIndicators tool.
type OutputEvaluateFairIndicators struct {
	// Results maps each RDA indicator id to its score and messages.
	Results map[string]indicator.Result `json:"results"`
	// DecoderUsed is the name of the metadata decoder that was selected.
	DecoderUsed string `json:"decoder_used"`
	// RecordCount is the number of metadata records harvested before scoring.
	RecordCount int `json:"record_count"`
}

// EvaluateFairIndicators harvests the provided metadata document and runs
// the full indicator battery over it.
func EvaluateFairIndicators(ctx context.Context, _ *mcp.CallToolRequest, input InputEvaluateFairIndicators) (*mcp.CallToolResult, OutputEvaluateFairIndicators, error) {
	if input.Content == "" {
		return nil, OutputEvaluateFairIndicators{}, fmt.Errorf("content is required")
	}

	rawConfig := input.Config
	if rawConfig == "" {
		rawConfig = defaultConfigYAML
	}
	cfg, err := config.Parse([]byte(rawConfig))
	if err != nil {
		return nil, OutputEvaluateFairIndicators{}, err
	}

	itemID := input.ItemID
	if itemID == "" {
		itemID = "unknown"
	}

	var headers http.Header
	if input.ContentType != "" {
		headers = http.Header{}
		headers.Set("Content-Type", input.ContentType)
	}

	source := metadata.Source{
		Content: []byte(input.Content),
		Format:  input.Format,
		ID:      itemID,
	}

	session, err := indicator.NewSession(ctx, cfg, itemID, source, headers, zap.NewNop())
	if err != nil {
		return nil, OutputEvaluateFairIndicators{}, err
	}

	return nil, OutputEvaluateFairIndicators{
		Results:     session.Engine.EvaluateAll(ctx),
		DecoderUsed: session.Harvest.DecoderUsed,
		RecordCount: session.Harvest.RecordCount,
	}, nil
}

// defaultConfigYAML is the built-in evaluation configuration used when the
// caller does not supply one. The term map targets schema.org style JSON-LD
// element names.
const defaultConfigYAML = `
endpoint: https://example.org/api/v1
language: en
terms:
  identifier_term:
    - element: identifier
      kind: Metadata Identifier
  identifier_term_data:
    - element: identifiers
      kind: Data Identifier
  terms_access:
    - element: downloadURL
    - element: license
      kind: License
  terms_cv:
    - element: license
      kind: License
    - element: availableFormats
      kind: Format
  terms_relations:
    - element: contactPoints
      kind: Person Identifier
  terms_license:
    - element: license
      kind: License
  terms_provenance:
    - element: provenance
  terms_findability_richness:
    - element: title
      kind: Description
    - element: description
      kind: Description
    - element: keywords
      kind: Description
  terms_reusability_richness:
    - element: license
      kind: License
    - element: availableFormats
      kind: Format
    - element: temporalCoverage
      kind: Temporal Coverage
vocabularies:
  spdx: https://spdx.org/licenses/
  imtypes: https://www.iana.org/assignments/media-types
  orcid: https://orcid.org/
access:
  protocols: [http, https]
  registration_required: false
  registration_note: ""
  metadata_access_manual: []
  data_access_manual: []
  metadata_authentication: []
  metadata_persistence: []
standards:
  metadata: [JSON-LD]
  data: []
findability_terms: [Title, Description, Keywords]
`
