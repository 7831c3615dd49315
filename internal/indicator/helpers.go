// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/normalize"
	"github.com/fairscanproj/fairscan/internal/pid"
)

// termStrings flattens the textual values of the resolved terms, in
// resolution order.
func termStrings(terms []ResolvedTerm) []string {
	var out []string
	for _, term := range terms {
		out = append(out, normalize.Strings(term.Values)...)
	}
	return out
}

// evalPersistency scores an identifier list on persistent-scheme usage:
// 100 when at least one identifier uses a persistent scheme (doi, handle,
// orcid), 0 otherwise.
func (e *Engine) evalPersistency(identifiers []string, subject string) Result {
	if len(identifiers) == 0 {
		return single(0, e.tr("No identifier found for the %s", subject))
	}

	var persistent []string
	for _, id := range identifiers {
		if pid.IsPersistent(id) {
			persistent = append(persistent, id)
		}
	}
	if len(persistent) == 0 {
		return single(0, e.tr("None of the identifiers found for the %s is persistent: %s",
			subject, strings.Join(identifiers, ", ")))
	}
	return single(100, e.tr("Found persistent identifier/s for the %s: %s",
		subject, strings.Join(persistent, ", ")))
}

// evalUniqueness scores an identifier list on globally-unique-scheme usage:
// 100 when at least one identifier uses a globally unique scheme (doi,
// handle, orcid, uuid), 0 otherwise.
func (e *Engine) evalUniqueness(identifiers []string, subject string) Result {
	if len(identifiers) == 0 {
		return single(0, e.tr("No identifier found for the %s", subject))
	}

	var unique []string
	for _, id := range identifiers {
		if pid.IsGloballyUnique(id) {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return single(0, e.tr("None of the identifiers found for the %s is globally unique: %s",
			subject, strings.Join(identifiers, ", ")))
	}
	return single(100, e.tr("Found globally unique identifier/s for the %s: %s",
		subject, strings.Join(unique, ", ")))
}

// evalValidatedBasic scores the proportion of resolved terms with at least
// one value validated against a standard vocabulary.
func (e *Engine) evalValidatedBasic(terms []ResolvedTerm) Result {
	if len(terms) == 0 {
		return single(0, e.tr("No metadata elements found to validate against standard vocabularies"))
	}

	var validated []string
	for _, term := range terms {
		if term.Validation.HasValid() {
			validated = append(validated, term.Element)
		}
	}

	points := float64(len(validated)) / float64(len(terms)) * 100
	msg := e.tr("Found %d (%s) out of %d metadata elements validated against standard vocabularies",
		len(validated), strings.Join(validated, ", "), len(terms))
	return single(points, msg)
}

// licenseSplitCredit scores a license list by dividing the credit evenly:
// perItem = round(100/N) with ties rounding to even, total = perItem *
// standard-license count. The rounding artifacts (66 for 2 of 3, 12 per
// license for 8) are legacy numeric behavior that downstream consumers
// depend on; do not reconcile the total to 100.
func (e *Engine) licenseSplitCredit(licenses []string, machineReadable bool) Result {
	licenseNum := len(licenses)
	if licenseNum == 0 {
		return single(0, e.tr("No licenses declared in the metadata"))
	}

	pointsPerLicense := int(math.RoundToEven(100 / float64(licenseNum)))
	points := 0
	var standard []string
	for _, license := range licenses {
		if e.vocab.IsSPDXLicense(license, machineReadable) {
			standard = append(standard, license)
			points += pointsPerLicense
			e.logger.Debug("license is considered as standard by SPDX",
				zap.String("license", license),
				zap.Int("points", pointsPerLicense))
		}
	}

	var msg string
	switch {
	case points == 100:
		msg = e.tr("License/s in use are considered as standard according to SPDX license list: %s",
			strings.Join(standard, ", "))
	case points > 0:
		msg = e.tr("A subset of the license/s in use (%d out of %d) are standard according to SPDX license list: %s",
			len(standard), licenseNum, strings.Join(standard, ", "))
	default:
		msg = e.tr("None of the license/s defined are standard according to SPDX license list: %s",
			strings.Join(licenses, ", "))
	}
	msg = fmt.Sprintf("%s (points: %d)", msg, points)
	return single(float64(points), msg)
}

// sortedKeys returns the map keys sorted, for deterministic messages.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
