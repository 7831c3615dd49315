// SPDX-License-Identifier: Apache-2.0

package indicator_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairscanproj/fairscan/internal/indicator"
	"github.com/fairscanproj/fairscan/internal/metadata"
	"github.com/fairscanproj/fairscan/internal/normalize"
	"github.com/fairscanproj/fairscan/internal/vocabulary"
)

// ---
// Test doubles
// ---

type stubResolver struct {
	terms map[string][]indicator.ResolvedTerm
}

func (s *stubResolver) Resolve(_ context.Context, termID string, _ bool) ([]indicator.ResolvedTerm, error) {
	return s.terms[termID], nil
}

type stubProbe struct {
	links        map[string]bool
	pages        map[string][]byte
	panicOnFetch bool
}

func (s *stubProbe) CheckLink(_ context.Context, rawURL string) bool {
	return s.links[rawURL]
}

func (s *stubProbe) FetchPage(_ context.Context, rawURL string) ([]byte, error) {
	if s.panicOnFetch {
		panic("probe exploded")
	}
	if page, ok := s.pages[rawURL]; ok {
		return page, nil
	}
	return nil, fmt.Errorf("no page for %s", rawURL)
}

type stubRegistry struct {
	known map[string]bool
}

func (s *stubRegistry) LookupStandard(_ context.Context, query string) ([]vocabulary.StandardEntry, error) {
	if s.known[query] {
		return []vocabulary.StandardEntry{{Name: query, Abbreviation: query}}, nil
	}
	return nil, nil
}

// ---
// Fixtures
// ---

func values(items ...string) []normalize.Value {
	out := make([]normalize.Value, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func term(element string, kind normalize.ElementKind, vals ...string) indicator.ResolvedTerm {
	return indicator.ResolvedTerm{Element: element, Kind: kind, Values: values(vals...)}
}

func newEngine(t *testing.T, opts indicator.EngineOptions) *indicator.Engine {
	t.Helper()
	if opts.Vocabulary == nil {
		validator, err := vocabulary.NewValidator(nil, nil)
		require.NoError(t, err)
		opts.Vocabulary = validator
	}
	if opts.Table == nil {
		opts.Table = metadata.NewTable([]metadata.Record{
			{Schema: "1.0", Element: "title", Value: "Seafloor displacement series"},
		})
	}
	if opts.Resolver == nil {
		opts.Resolver = &stubResolver{}
	}
	return indicator.NewEngine(opts)
}

func evaluate(t *testing.T, e *indicator.Engine, name string) indicator.Result {
	t.Helper()
	result, err := e.Evaluate(context.Background(), name)
	require.NoError(t, err)
	return result
}

// ---
// Split-credit scoring
// ---

func TestLicenseSplitCredit(t *testing.T) {
	tests := []struct {
		name       string
		licenses   []string
		wantPoints float64
		wantInMsg  string
	}{
		{
			name:       "two of three validate yields 66 not 67",
			licenses:   []string{"MIT", "CC-BY-4.0", "not-a-license"},
			wantPoints: 66,
			wantInMsg:  "(points: 66)",
		},
		{
			name:       "single valid license yields exactly 100",
			licenses:   []string{"MIT"},
			wantPoints: 100,
			wantInMsg:  "standard according to SPDX",
		},
		{
			name:       "none validate yields 0",
			licenses:   []string{"not-a-license"},
			wantPoints: 0,
			wantInMsg:  "None of the license/s",
		},
		{
			// round(100/8) = 12.5 rounds to even, so one valid license of
			// eight earns 12 points, not 13.
			name:       "per-license credit rounds ties to even",
			licenses:   []string{"MIT", "l2", "l3", "l4", "l5", "l6", "l7", "l8"},
			wantPoints: 12,
			wantInMsg:  "(points: 12)",
		},
		{
			name:       "zero licenses is a defined edge case",
			licenses:   nil,
			wantPoints: 0,
			wantInMsg:  "No licenses declared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
				"terms_license": {term("license", normalize.KindLicense, tt.licenses...)},
			}}
			e := newEngine(t, indicator.EngineOptions{Resolver: resolver})

			result := evaluate(t, e, "RDA-R1.1-02M")
			assert.Equal(t, tt.wantPoints, result.Points)
			require.Len(t, result.Messages, 1)
			assert.Contains(t, result.Messages[0].Message, tt.wantInMsg)
		})
	}
}

func TestLicenseMachineReadableRewording(t *testing.T) {
	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"terms_license": {term("license", normalize.KindLicense, "MIT")},
	}}
	e := newEngine(t, indicator.EngineOptions{Resolver: resolver})

	result := evaluate(t, e, "RDA-R1.1-03M")
	assert.Equal(t, float64(100), result.Points)
	assert.Contains(t, result.Messages[0].Message, "machine readable according to SPDX")
}

// ---
// Alias delegation
// ---

func TestAliasesReturnIdenticalResults(t *testing.T) {
	registry := &stubRegistry{known: map[string]bool{"NetCDF": true}}
	validator, err := vocabulary.NewValidator(registry, nil)
	require.NoError(t, err)

	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"terms_cv": {
			{
				Element: "license",
				Kind:    normalize.KindLicense,
				Values:  values("MIT"),
				Validation: vocabulary.ValidationResult{
					"spdx": {Valid: []string{"MIT"}, NonValid: []string{}},
				},
			},
		},
		"terms_relations": {
			{
				Element: "creator",
				Kind:    normalize.KindPersonIdentifier,
				Values:  values("https://orcid.org/0000-0002-1825-0097"),
				Validation: vocabulary.ValidationResult{
					"orcid": {Valid: []string{"https://orcid.org/0000-0002-1825-0097"}, NonValid: []string{}},
				},
			},
		},
	}}
	e := newEngine(t, indicator.EngineOptions{
		Resolver:   resolver,
		Vocabulary: validator,
		Policy:     indicator.Policy{DataStandards: []string{"NetCDF", "unregistered"}},
	})

	aliasPairs := map[string]string{
		"RDA-I1-02D":   "RDA-I1-01D",
		"RDA-I2-01M":   "RDA-I1-01M",
		"RDA-I2-01D":   "RDA-I1-01D",
		"RDA-I3-01M":   "RDA-I3-03M",
		"RDA-R1.3-01D": "RDA-I1-01D",
	}
	for alias, target := range aliasPairs {
		t.Run(alias, func(t *testing.T) {
			assert.Equal(t, evaluate(t, e, target), evaluate(t, e, alias))
		})
	}
}

// ---
// Access decision table
// ---

func TestAccessDecisionTable(t *testing.T) {
	const note = "Data is only downloadable upon registration in the repository website"

	tests := []struct {
		name         string
		accessValues []string
		registration bool
		wantPoints   float64
		wantInMsgs   []string
	}{
		{
			name:         "metadata present and registration required",
			accessValues: []string{"https://example.org/download/42"},
			registration: true,
			wantPoints:   100,
			wantInMsgs:   []string{"Metadata found for access", note},
		},
		{
			name:         "metadata present without registration",
			accessValues: []string{"https://example.org/download/42"},
			registration: false,
			wantPoints:   100,
			wantInMsgs:   []string{"Metadata found for access", "Data can not be accessed manually"},
		},
		{
			name:         "metadata absent but registration access exists",
			accessValues: nil,
			registration: true,
			wantPoints:   100,
			wantInMsgs:   []string{"Data can be accessed manually", note},
		},
		{
			name:         "both absent",
			accessValues: nil,
			registration: false,
			wantPoints:   0,
			wantInMsgs:   []string{"No access information can be found in the metadata"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
				"terms_access": {term("downloadURL", normalize.KindUnknown, tt.accessValues...)},
			}}
			e := newEngine(t, indicator.EngineOptions{
				Resolver: resolver,
				Policy: indicator.Policy{
					RegistrationRequired: tt.registration,
					RegistrationNote:     note,
				},
			})

			result := evaluate(t, e, "RDA-A1-01M")
			assert.Equal(t, tt.wantPoints, result.Points)

			joined := ""
			for _, msg := range result.Messages {
				joined += msg.Message + "\n"
			}
			for _, want := range tt.wantInMsgs {
				assert.Contains(t, joined, want)
			}
		})
	}
}

// ---
// Fault containment
// ---

func TestPanickingRuleIsContained(t *testing.T) {
	e := newEngine(t, indicator.EngineOptions{
		Probe:  &stubProbe{panicOnFetch: true},
		Policy: indicator.Policy{ItemID: "https://example.org/dataset/42"},
	})

	result := evaluate(t, e, "RDA-A1-02M")
	assert.Equal(t, float64(0), result.Points)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0].Message, "RDA-A1-02M")
}

func TestUnknownIndicator(t *testing.T) {
	e := newEngine(t, indicator.EngineOptions{})
	_, err := e.Evaluate(context.Background(), "RDA-X9-99Z")
	assert.ErrorIs(t, err, indicator.ErrUnknownIndicator)
}

// ---
// Findable rules
// ---

func TestPersistentIdentifier(t *testing.T) {
	t.Run("DOI scores 100", func(t *testing.T) {
		resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
			"identifier_term": {term("id", normalize.KindMetadataIdentifier, "https://doi.org/10.13127/tsunami/42")},
		}}
		e := newEngine(t, indicator.EngineOptions{Resolver: resolver})
		assert.Equal(t, float64(100), evaluate(t, e, "RDA-F1-01M").Points)
	})

	t.Run("internal id falls back to persistence policy link", func(t *testing.T) {
		const policyURL = "https://example.org/policy/persistence"
		resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
			"identifier_term": {term("id", normalize.KindMetadataIdentifier, "internal-id-1")},
		}}
		e := newEngine(t, indicator.EngineOptions{
			Resolver: resolver,
			Probe:    &stubProbe{links: map[string]bool{policyURL: true}},
			Policy:   indicator.Policy{MetadataPersistence: []string{policyURL}},
		})
		result := evaluate(t, e, "RDA-F1-01M")
		assert.Equal(t, float64(100), result.Points)
		assert.Contains(t, result.Messages[0].Message, "persistence policy")
	})

	t.Run("internal id without policy scores 0", func(t *testing.T) {
		resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
			"identifier_term": {term("id", normalize.KindMetadataIdentifier, "internal-id-1")},
		}}
		e := newEngine(t, indicator.EngineOptions{Resolver: resolver})
		assert.Equal(t, float64(0), evaluate(t, e, "RDA-F1-01M").Points)
	})
}

func TestGloballyUniqueIdentifier(t *testing.T) {
	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"identifier_term_data": {term("identifiers", normalize.KindDataIdentifier,
			"123e4567-e89b-12d3-a456-426614174000")},
	}}
	e := newEngine(t, indicator.EngineOptions{Resolver: resolver})

	// UUID is globally unique but not persistent.
	assert.Equal(t, float64(100), evaluate(t, e, "RDA-F1-02D").Points)
	assert.Equal(t, float64(0), evaluate(t, e, "RDA-F1-01D").Points)
}

func TestFindabilityRichness(t *testing.T) {
	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"terms_findability_richness": {
			term("title", normalize.KindDescription, "Seafloor displacement series"),
			term("description", normalize.KindDescription, "Hourly series"),
			term("subject", normalize.KindDescription),
		},
	}}
	e := newEngine(t, indicator.EngineOptions{
		Resolver: resolver,
		Policy:   indicator.Policy{FindabilityTerms: []string{"Title", "Description", "Subject"}},
	})

	// 2 populated terms at round(100/3) = 33 points each.
	assert.Equal(t, float64(66), evaluate(t, e, "RDA-F2-01M").Points)
}

func TestFindabilityRichnessRoundsTiesToEven(t *testing.T) {
	discovery := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}
	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"terms_findability_richness": {
			term("title", normalize.KindDescription, "Seafloor displacement series"),
		},
	}}
	e := newEngine(t, indicator.EngineOptions{
		Resolver: resolver,
		Policy:   indicator.Policy{FindabilityTerms: discovery},
	})

	// round(100/8) = 12.5 rounds to even: 12 per populated term.
	assert.Equal(t, float64(12), evaluate(t, e, "RDA-F2-01M").Points)
}

func TestHarvestability(t *testing.T) {
	t.Run("non-empty table scores 100", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{})
		assert.Equal(t, float64(100), evaluate(t, e, "RDA-F4-01M").Points)
	})

	t.Run("empty table scores 0 and names the endpoint", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{
			Table:  metadata.NewTable(nil),
			Policy: indicator.Policy{Endpoint: "https://repository.example.org/api"},
		})
		result := evaluate(t, e, "RDA-F4-01M")
		assert.Equal(t, float64(0), result.Points)
		assert.Contains(t, result.Messages[0].Message, "https://repository.example.org/api")
	})
}

// ---
// Interoperable rules
// ---

func TestMachineUnderstandableMetadata(t *testing.T) {
	t.Run("registered media type scores 100 with both check messages", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("Content-Type", "application/json")
		e := newEngine(t, indicator.EngineOptions{Headers: headers})

		result := evaluate(t, e, "RDA-I1-02M")
		assert.Equal(t, float64(100), result.Points)
		require.Len(t, result.Messages, 2)
		assert.Contains(t, result.Messages[0].Message, "application/json")
		assert.Contains(t, result.Messages[1].Message, "IANA")
	})

	t.Run("media-type parameters are not stripped", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("Content-Type", "application/json;charset=UTF-8")
		e := newEngine(t, indicator.EngineOptions{Headers: headers})
		assert.Equal(t, float64(0), evaluate(t, e, "RDA-I1-02M").Points)
	})

	t.Run("missing header scores 0", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{})
		assert.Equal(t, float64(0), evaluate(t, e, "RDA-I1-02M").Points)
	})
}

func TestDataStandardsProportionalScore(t *testing.T) {
	registry := &stubRegistry{known: map[string]bool{"NetCDF": true}}
	validator, err := vocabulary.NewValidator(registry, nil)
	require.NoError(t, err)

	e := newEngine(t, indicator.EngineOptions{
		Vocabulary: validator,
		Policy:     indicator.Policy{DataStandards: []string{"NetCDF", "unregistered"}},
	})

	result := evaluate(t, e, "RDA-I1-01D")
	assert.Equal(t, float64(50), result.Points)
	assert.Contains(t, result.Messages[0].Message, "NetCDF")
}

func TestQualifiedReferences(t *testing.T) {
	t.Run("validated relation element names element, vocabulary and values", func(t *testing.T) {
		resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
			"terms_relations": {
				{
					Element: "creator",
					Kind:    normalize.KindPersonIdentifier,
					Values:  values("https://orcid.org/0000-0002-1825-0097"),
					Validation: vocabulary.ValidationResult{
						"orcid": {Valid: []string{"https://orcid.org/0000-0002-1825-0097"}, NonValid: []string{}},
					},
				},
			},
		}}
		e := newEngine(t, indicator.EngineOptions{Resolver: resolver})

		result := evaluate(t, e, "RDA-I3-03M")
		assert.Equal(t, float64(100), result.Points)
		msg := result.Messages[0].Message
		assert.Contains(t, msg, "creator")
		assert.Contains(t, msg, "orcid")
		assert.Contains(t, msg, "0000-0002-1825-0097")
	})

	t.Run("no validated relations scores 0", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{})
		assert.Equal(t, float64(0), evaluate(t, e, "RDA-I3-03M").Points)
	})
}

// ---
// Static policy rules
// ---

func TestStaticPolicyRules(t *testing.T) {
	e := newEngine(t, indicator.EngineOptions{
		Policy: indicator.Policy{RegistrationRequired: true},
	})

	assert.Equal(t, float64(0), evaluate(t, e, "RDA-A1-05D").Points)
	assert.Equal(t, float64(0), evaluate(t, e, "RDA-I3-02M").Points)
	assert.Equal(t, float64(100), evaluate(t, e, "RDA-A1-03D").Points)
	assert.Equal(t, float64(100), evaluate(t, e, "RDA-A2-01M").Points)
}

// ---
// Accessible rules
// ---

func TestProtocolRules(t *testing.T) {
	resolver := &stubResolver{terms: map[string][]indicator.ResolvedTerm{
		"terms_access": {term("downloadURL", normalize.KindUnknown, "https://example.org/download/42")},
	}}
	e := newEngine(t, indicator.EngineOptions{
		Resolver: resolver,
		Policy: indicator.Policy{
			Endpoint:        "https://repository.example.org/api",
			AccessProtocols: []string{"http", "https"},
		},
	})

	assert.Equal(t, float64(100), evaluate(t, e, "RDA-A1-04M").Points)
	assert.Equal(t, float64(100), evaluate(t, e, "RDA-A1-04D").Points)

	free := evaluate(t, e, "RDA-A1.1-01M")
	assert.Equal(t, float64(100), free.Points)
	assert.Contains(t, free.Messages[0].Message, "free protocol")
	assert.Contains(t, free.Messages[0].Message, "HTTPS")
}

func TestProtocolNotStandardised(t *testing.T) {
	e := newEngine(t, indicator.EngineOptions{
		Policy: indicator.Policy{
			Endpoint:        "ftp://repository.example.org/api",
			AccessProtocols: []string{"http", "https"},
		},
	})

	result := evaluate(t, e, "RDA-A1-04M")
	assert.Equal(t, float64(0), result.Points)
	assert.Contains(t, result.Messages[0].Message, "non-standarised")
}

func TestLandingPageJSONLD(t *testing.T) {
	const itemURL = "https://example.org/dataset/42"
	page := []byte(`<html><head>
		<script type="application/ld+json">{"@context": "https://schema.org"}</script>
	</head><body></body></html>`)

	t.Run("embedded record scores 100", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{
			Probe:  &stubProbe{pages: map[string][]byte{itemURL: page}},
			Policy: indicator.Policy{ItemID: itemURL},
		})
		assert.Equal(t, float64(100), evaluate(t, e, "RDA-A1-02M").Points)
	})

	t.Run("unreachable landing page degrades to 0", func(t *testing.T) {
		e := newEngine(t, indicator.EngineOptions{
			Probe:  &stubProbe{},
			Policy: indicator.Policy{ItemID: itemURL},
		})
		result := evaluate(t, e, "RDA-A1-02M")
		assert.Equal(t, float64(0), result.Points)
		assert.Contains(t, result.Messages[0].Message, itemURL)
	})
}

// ---
// Batch evaluation
// ---

func TestEvaluateAll(t *testing.T) {
	e := newEngine(t, indicator.EngineOptions{})
	results := e.EvaluateAll(context.Background())

	names := e.Names()
	assert.Len(t, results, len(names))
	for _, name := range names {
		result, ok := results[name]
		require.True(t, ok, "missing result for %s", name)
		assert.GreaterOrEqual(t, result.Points, float64(0), name)
		assert.LessOrEqual(t, result.Points, float64(100), name)
		assert.NotEmpty(t, result.Messages, name)
	}
}
