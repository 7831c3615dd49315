// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// reusabilityRichness implements RDA-R1-01M: a plurality of accurate and
// relevant attributes is provided to allow reuse. Points are proportional
// to the populated share of the configured reusability elements.
func (e *Engine) reusabilityRichness(ctx context.Context) Result {
	terms := e.resolve(ctx, "terms_reusability_richness", false)
	if len(terms) == 0 {
		return single(0, e.tr("No metadata elements that enhance reusability are defined in configuration"))
	}

	var populated []string
	for _, term := range terms {
		if len(term.Values) > 0 {
			populated = append(populated, term.Element)
		}
	}

	points := float64(len(populated)) / float64(len(terms)) * 100
	if len(populated) == 0 {
		return single(points, e.tr("Could not find any metadata element that enhances reusability"))
	}
	return single(points, e.tr("Found %d metadata elements that enhance reusability: %s",
		len(populated), strings.Join(populated, ", ")))
}

// licenseInformationPresent implements RDA-R1.1-01M: metadata includes
// information about the license under which the data can be reused.
func (e *Engine) licenseInformationPresent(ctx context.Context) Result {
	licenses := termStrings(e.resolve(ctx, "terms_license", false))
	if len(licenses) == 0 {
		return single(0, e.tr("No license information found in the metadata"))
	}
	if len(licenses) == 1 {
		return single(100, e.tr("The license is: %s", licenses[0]))
	}
	return single(100, e.tr("The licenses are: %s", strings.Join(licenses, ", ")))
}

// licenseIsStandard implements RDA-R1.1-02M: metadata refers to a standard
// reuse license, with credit split evenly across the declared licenses.
func (e *Engine) licenseIsStandard(ctx context.Context) Result {
	licenses := termStrings(e.resolve(ctx, "terms_license", false))
	return e.licenseSplitCredit(licenses, false)
}

// licenseIsMachineReadable implements RDA-R1.1-03M: metadata refers to a
// machine-understandable reuse license. Re-runs the standard-license check
// in machine-readable mode and rewords the outcome.
func (e *Engine) licenseIsMachineReadable(ctx context.Context) Result {
	licenses := termStrings(e.resolve(ctx, "terms_license", false))
	result := e.licenseSplitCredit(licenses, true)

	var msg string
	switch {
	case result.Points == 100:
		msg = e.tr("License/s are machine readable according to SPDX")
	case result.Points == 0:
		msg = e.tr("License/s are not machine readable according to SPDX")
	default:
		msg = e.tr("A subset of the license/s are machine readable according to SPDX")
	}
	return single(result.Points, msg)
}

// provenanceInformationPresent implements RDA-R1.2-01M: metadata includes
// provenance information in a community-compliant way.
func (e *Engine) provenanceInformationPresent(ctx context.Context) Result {
	values := termStrings(e.resolve(ctx, "terms_provenance", false))
	if len(values) == 0 {
		return single(0, e.tr("No provenance or curation references found in the metadata"))
	}
	return single(100, e.tr("Found provenance or curation references in the metadata: %s",
		strings.Join(values, ", ")))
}

// metadataCompliesWithStandard implements RDA-R1.3-01M: metadata complies
// with a community standard, judged by an exact abbreviation match of the
// declared metadata standard in the standards registry.
func (e *Engine) metadataCompliesWithStandard(ctx context.Context) Result {
	if len(e.policy.MetadataStandards) == 0 {
		return single(0, e.tr("No metadata standard"))
	}

	standard := e.policy.MetadataStandards[0]
	found, err := e.vocab.ValidateDataStandard(ctx, standard)
	if err != nil {
		e.logger.Warn("standards registry lookup failed",
			zap.String("standard", standard),
			zap.Error(err))
		return single(0, e.tr("No metadata standard"))
	}
	if !found {
		return single(0, e.tr("No metadata standard"))
	}
	return single(100, e.tr("Metadata standard in use complies with a community standard according to the standards registry"))
}

// metadataStandardMachineUnderstandable implements RDA-R1.3-02M: metadata
// is expressed in compliance with a machine-understandable community
// standard. Delegates to the community-standard check and rewords the
// positive outcome.
func (e *Engine) metadataStandardMachineUnderstandable(ctx context.Context) Result {
	if len(e.policy.MetadataStandards) == 0 {
		return single(0, e.tr("No metadata standard"))
	}

	result := e.metadataCompliesWithStandard(ctx)
	if result.Points == 100 {
		return single(100, e.tr("The metadata standard in use is compliant with a machine-understandable community standard"))
	}
	return result
}
