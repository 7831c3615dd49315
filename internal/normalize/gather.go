// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Value is one canonical element value. Most kinds yield strings; Temporal
// Coverage yields Period tuples and Spatial Coverage passes the nested
// geo-box through untouched.
type Value = interface{}

// Period is the canonical form of one temporal coverage entry. Either side
// may be empty when the source record omits it.
type Period struct {
	Start string
	End   string
}

// Extractor normalizes raw element values. The zero value is unusable;
// construct with NewExtractor.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor that logs degraded normalizations to
// the given logger.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// gatherFunc is one per-kind normalization rule: a pure function over the
// raw value list. Returning an error selects the fallback path.
type gatherFunc func(values []interface{}) ([]Value, error)

var gatherFuncs = map[ElementKind]gatherFunc{
	KindMetadataIdentifier:     gatherPassthrough,
	KindDataIdentifier:         gatherDataIdentifiers,
	KindTemporalCoverage:       gatherTemporalCoverage,
	KindSpatialCoverage:        gatherSpatialCoverage,
	KindPersonIdentifier:       gatherEntityIdentifiers,
	KindFormat:                 gatherFormats,
	KindDate:                   gatherDates,
	KindDescription:            gatherText,
	KindType:                   gatherText, // aliased to the Description rule pending dedicated logic
	KindLanguage:               gatherText, // aliased to the Description rule pending dedicated logic
	KindLicense:                gatherText, // aliased to the Description rule pending dedicated logic
	KindOrganizationIdentifier: gatherEntityIdentifiers,
}

// Gather normalizes the raw value(s) of one metadata element according to
// its kind. It never fails outward: an unrecognised kind or a rule that
// cannot interpret its input is logged at warning level and degrades to the
// raw input formatted as a list, so callers can always treat the result as
// a list.
func (e *Extractor) Gather(raw interface{}, kind ElementKind) []Value {
	fn, ok := gatherFuncs[kind]
	if !ok {
		return e.fallback(raw, kind, nil)
	}

	values, err := fn(asList(raw))
	if err != nil {
		return e.fallback(raw, kind, err)
	}

	e.logger.Debug("gathered element values",
		zap.String("element", kind.String()),
		zap.Int("count", len(values)))
	return values
}

// fallback is the degraded canonicalization: a scalar is wrapped in a
// one-element list, a collection is returned unchanged.
func (e *Extractor) fallback(raw interface{}, kind ElementKind, cause error) []Value {
	var values []Value
	switch v := raw.(type) {
	case nil:
		values = []Value{}
	case []interface{}:
		values = v
	default:
		values = []Value{v}
	}

	fields := []zap.Field{
		zap.String("element", kind.String()),
		zap.Int("count", len(values)),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	e.logger.Warn("no usable gather rule for metadata element, returning input values formatted to list", fields...)
	return values
}

// asList coerces the raw element value into a value list: collections pass
// through, a single scalar (or structured entry) becomes a one-element list.
func asList(raw interface{}) []interface{} {
	switch v := raw.(type) {
	case nil:
		return nil
	case []interface{}:
		return v
	default:
		return []interface{}{v}
	}
}

// gatherPassthrough keeps the values as-is; metadata identifiers arrive
// already as a list of scalars.
func gatherPassthrough(values []interface{}) ([]Value, error) {
	out := make([]Value, 0, len(values))
	out = append(out, values...)
	return out, nil
}

// gatherDataIdentifiers extracts the value field of each structured entry,
// e.g. {"type": "DOI", "value": "https://doi.org/10.13127/..."}.
func gatherDataIdentifiers(values []interface{}) ([]Value, error) {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("data identifier entry is not structured: %v", v)
		}
		value, ok := entry["value"]
		if !ok {
			return nil, fmt.Errorf("data identifier entry has no value field: %v", v)
		}
		out = append(out, value)
	}
	return out, nil
}

// gatherTemporalCoverage emits one (start, end) Period per entry, with the
// empty string standing in for an absent side.
func gatherTemporalCoverage(values []interface{}) ([]Value, error) {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("temporal coverage entry is not structured: %v", v)
		}
		out = append(out, Period{
			Start: stringField(entry, "startDate"),
			End:   stringField(entry, "endDate"),
		})
	}
	return out, nil
}

// gatherSpatialCoverage emits the nested geo.box of each entry that carries
// one; entries lacking it are dropped entirely.
func gatherSpatialCoverage(values []interface{}) ([]Value, error) {
	var out []Value
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("spatial coverage entry is not structured: %v", v)
		}
		geo, ok := entry["geo"].(map[string]interface{})
		if !ok {
			continue
		}
		if box, ok := geo["box"]; ok {
			out = append(out, box)
		}
	}
	if out == nil {
		out = []Value{}
	}
	return out, nil
}

// gatherEntityIdentifiers extracts the @id field of person and organization
// entries; entries without one are dropped.
func gatherEntityIdentifiers(values []interface{}) ([]Value, error) {
	out := []Value{}
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := entry["@id"]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// gatherFormats extracts the format field of each entry, filtering out
// empty and missing values.
func gatherFormats(values []interface{}) ([]Value, error) {
	out := []Value{}
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("format entry is not structured: %v", v)
		}
		if format := stringField(entry, "format"); format != "" {
			out = append(out, format)
		}
	}
	return out, nil
}

// isoLayouts are the accepted ISO-8601 shapes, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
}

// ParseISO8601 parses an ISO-8601 timestamp or date.
func ParseISO8601(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// gatherDates keeps the entries that parse as ISO-8601 timestamps. This is
// a filter, not a validation step: entries that do not parse are dropped.
func gatherDates(values []interface{}) ([]Value, error) {
	out := []Value{}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if _, err := ParseISO8601(s); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// gatherText keeps the entries whose runtime type is text; everything else
// is dropped.
func gatherText(values []interface{}) ([]Value, error) {
	out := []Value{}
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func stringField(entry map[string]interface{}, key string) string {
	if s, ok := entry[key].(string); ok {
		return s
	}
	return ""
}

// Strings narrows a canonical value list to its string members. Convenience
// for callers that score over textual values.
func Strings(values []Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
