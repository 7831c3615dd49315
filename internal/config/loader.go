// SPDX-License-Identifier: Apache-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"
)

//go:embed schema.cue
var schemaSource string

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates the raw YAML against the embedded CUE schema and decodes
// it into a Config.
func Parse(raw []byte) (*Config, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	cfg := &Config{Language: "en"}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return cfg, nil
}

// validateSchema unifies the document with the schema. YAML is converted
// to JSON first, which is valid CUE.
func validateSchema(raw []byte) error {
	jsonBytes, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return fmt.Errorf("config is not valid YAML: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if schema.Err() != nil {
		return fmt.Errorf("compiling config schema: %w", schema.Err())
	}
	doc := ctx.CompileBytes(jsonBytes)
	if doc.Err() != nil {
		return fmt.Errorf("compiling config document: %w", doc.Err())
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
