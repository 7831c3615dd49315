// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"math"
	"strings"
)

// metadataIdentifierIsPersistent implements RDA-F1-01M: the metadata is
// identified by a persistent identifier. When no identifier qualifies, a
// published persistence policy link still grants the full score.
func (e *Engine) metadataIdentifierIsPersistent(ctx context.Context) Result {
	identifiers := termStrings(e.resolve(ctx, "identifier_term", false))
	result := e.evalPersistency(identifiers, "metadata")

	if result.Points == 0 && len(e.policy.MetadataPersistence) > 0 && e.probe != nil {
		if e.probe.CheckLink(ctx, e.policy.MetadataPersistence[0]) {
			return single(100, e.tr("Identifier found and persistence policy given at %s",
				e.policy.MetadataPersistence[0]))
		}
	}
	return result
}

// dataIdentifierIsPersistent implements RDA-F1-01D: the data is identified
// by a persistent identifier.
func (e *Engine) dataIdentifierIsPersistent(ctx context.Context) Result {
	identifiers := termStrings(e.resolve(ctx, "identifier_term_data", false))
	return e.evalPersistency(identifiers, "data")
}

// metadataIdentifierIsUnique implements RDA-F1-02M: the metadata is
// identified by a globally unique identifier.
func (e *Engine) metadataIdentifierIsUnique(ctx context.Context) Result {
	identifiers := termStrings(e.resolve(ctx, "identifier_term", false))
	return e.evalUniqueness(identifiers, "metadata")
}

// dataIdentifierIsUnique implements RDA-F1-02D: the data is identified by a
// globally unique identifier.
func (e *Engine) dataIdentifierIsUnique(ctx context.Context) Result {
	identifiers := termStrings(e.resolve(ctx, "identifier_term_data", false))
	return e.evalUniqueness(identifiers, "data")
}

// findabilityRichness implements RDA-F2-01M: rich metadata is provided to
// allow discovery, graded against the configured discovery element set.
// Credit splits evenly across the configured elements; round(100/N) per
// element, ties to even, is legacy numeric behavior and is kept as is.
func (e *Engine) findabilityRichness(ctx context.Context) Result {
	discoveryTerms := e.policy.FindabilityTerms
	if len(discoveryTerms) == 0 {
		return single(0, e.tr("Terms/elements for resource discovery are not defined in configuration. Please do so within the findability_terms section"))
	}

	pointsPerTerm := int(math.RoundToEven(100 / float64(len(discoveryTerms))))
	terms := e.resolve(ctx, "terms_findability_richness", false)

	populated := 0
	for _, term := range terms {
		if len(term.Values) > 0 {
			populated++
		}
	}

	points := float64(populated * pointsPerTerm)
	msg := e.tr("Found %d (out of %d) metadata elements matching resource discovery elements",
		populated, len(discoveryTerms))
	return single(points, msg)
}

// metadataIncludesDataIdentifier implements RDA-F3-01M: metadata clearly
// and explicitly includes the identifier of the data it describes.
func (e *Engine) metadataIncludesDataIdentifier(ctx context.Context) Result {
	identifiers := termStrings(e.resolve(ctx, "identifier_term_data", false))
	if len(identifiers) == 0 {
		return single(0, e.tr("Metadata does not include an identifier for the data"))
	}
	return single(100, e.tr("Metadata includes identifier/s for the data: %s",
		strings.Join(identifiers, ", ")))
}

// metadataIsHarvestable implements RDA-F4-01M: metadata is offered in such
// a way that it can be harvested and indexed.
func (e *Engine) metadataIsHarvestable(ctx context.Context) Result {
	if e.table.IsEmpty() {
		return single(0, e.tr("Could not gather metadata from endpoint: %s. Metadata cannot be harvested and indexed.",
			e.policy.Endpoint))
	}
	return single(100, e.tr("Metadata is gathered programmatically through HTTP (API REST), thus can be harvested and indexed."))
}
