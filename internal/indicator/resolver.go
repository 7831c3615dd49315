// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/config"
	"github.com/fairscanproj/fairscan/internal/metadata"
	"github.com/fairscanproj/fairscan/internal/normalize"
	"github.com/fairscanproj/fairscan/internal/vocabulary"
)

// ResolvedTerm is the normalized metadata slice behind one element binding
// of a term id, optionally with its vocabulary validation precomputed.
type ResolvedTerm struct {
	Element    string
	Kind       normalize.ElementKind
	Values     []normalize.Value
	Validation vocabulary.ValidationResult
}

// TermResolver resolves a term id into the metadata slices the bound
// elements produce. Satisfiable by a test double.
type TermResolver interface {
	Resolve(ctx context.Context, termID string, validate bool) ([]ResolvedTerm, error)
}

// ConfigResolver resolves term ids through the configured term map: each
// binding selects table records by element name and normalizes them by the
// bound kind.
type ConfigResolver struct {
	table        *metadata.Table
	terms        map[string][]config.TermBinding
	vocabularies map[string]string
	extractor    *normalize.Extractor
	validator    *vocabulary.Validator
	logger       *zap.Logger
}

// NewConfigResolver creates a ConfigResolver over the given table.
func NewConfigResolver(table *metadata.Table, cfg *config.Config, validator *vocabulary.Validator, logger *zap.Logger) *ConfigResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigResolver{
		table:        table,
		terms:        cfg.Terms,
		vocabularies: cfg.Vocabularies,
		extractor:    normalize.NewExtractor(logger),
		validator:    validator,
		logger:       logger,
	}
}

// Resolve returns one ResolvedTerm per element binding of the term id. A
// term id with no bindings resolves to an empty slice, not an error; the
// rules score missing configuration as 0 with an explanatory message.
func (r *ConfigResolver) Resolve(ctx context.Context, termID string, validate bool) ([]ResolvedTerm, error) {
	bindings := r.terms[termID]
	if len(bindings) == 0 {
		r.logger.Warn("term id has no element bindings in configuration", zap.String("term", termID))
	}

	resolved := make([]ResolvedTerm, 0, len(bindings))
	for _, binding := range bindings {
		kind := normalize.KindFromName(binding.Kind)
		values := r.extractor.Gather(r.table.Values(binding.Element), kind)

		term := ResolvedTerm{
			Element: binding.Element,
			Kind:    kind,
			Values:  values,
		}
		if validate {
			term.Validation = r.validate(kind, normalize.Strings(values))
		}
		resolved = append(resolved, term)
	}
	return resolved, nil
}

// validate runs the vocabulary backend matching the element kind. Kinds
// with no vocabulary leave the validation result nil.
func (r *ConfigResolver) validate(kind normalize.ElementKind, values []string) vocabulary.ValidationResult {
	if len(values) == 0 {
		return nil
	}
	switch kind {
	case normalize.KindLicense:
		return r.validator.ValidateLicenses(values, r.vocabularies, false)
	case normalize.KindFormat:
		return r.validator.ValidateFormats(values, r.vocabularies)
	case normalize.KindPersonIdentifier, normalize.KindOrganizationIdentifier:
		return r.validator.ValidateIdentifiers(values, r.vocabularies)
	default:
		return nil
	}
}
