// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/config"
	"github.com/fairscanproj/fairscan/internal/i18n"
	"github.com/fairscanproj/fairscan/internal/metadata"
	"github.com/fairscanproj/fairscan/internal/metadata/decoders"
	"github.com/fairscanproj/fairscan/internal/vocabulary"
)

// Session is one fully assembled evaluation: the harvested table, the rule
// engine bound to it, and the harvest diagnostics.
type Session struct {
	Engine  *Engine
	Harvest metadata.HarvestResult
}

// NewSession harvests the raw metadata document and wires the evaluation
// pipeline around it: decoders, vocabulary validator (with the standards
// registry when configured), message translator, term resolver and web
// probe. A harvest failure is fatal; scoring against absent metadata would
// be meaningless.
func NewSession(ctx context.Context, cfg *config.Config, itemID string, source metadata.Source, headers http.Header, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	harvester := metadata.NewHarvester(logger,
		decoders.NewLandingPageDecoder(),
		decoders.NewJSONLDDecoder(),
		decoders.NewYAMLDecoder(),
	)
	harvest, err := harvester.HarvestWithMeta(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("harvesting metadata for %q: %w", itemID, err)
	}

	var registry vocabulary.RegistryClient
	if cfg.Registry.BaseURL != "" {
		registry = vocabulary.NewHTTPRegistryClient(cfg.Registry.BaseURL, cfg.Registry.APIKey, nil, logger)
	}
	validator, err := vocabulary.NewValidator(registry, logger)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary catalogs: %w", err)
	}

	translator, err := i18n.Load(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("loading message catalog: %w", err)
	}

	engine := NewEngine(EngineOptions{
		Table:      harvest.Table,
		Headers:    headers,
		Resolver:   NewConfigResolver(harvest.Table, cfg, validator, logger),
		Vocabulary: validator,
		Translator: translator,
		Probe:      NewHTTPProbe(nil, logger),
		Policy:     PolicyFromConfig(cfg, itemID),
		Logger:     logger,
	})
	return &Session{Engine: engine, Harvest: harvest}, nil
}
