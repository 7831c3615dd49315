// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/i18n"
	"github.com/fairscanproj/fairscan/internal/metadata"
	"github.com/fairscanproj/fairscan/internal/vocabulary"
)

// ErrUnknownIndicator is returned when the requested indicator id is not
// registered.
var ErrUnknownIndicator = errors.New("unknown indicator")

// aliases forwards an indicator id to the rule whose FAIR principle is
// judged identical in this evaluation context. Alias invocations return the
// target's result verbatim.
var aliases = map[string]string{
	"RDA-I1-02D":   "RDA-I1-01D",
	"RDA-I2-01M":   "RDA-I1-01M",
	"RDA-I2-01D":   "RDA-I1-01D",
	"RDA-I3-01M":   "RDA-I3-03M",
	"RDA-R1.3-01D": "RDA-I1-01D",
}

// ruleFunc is one indicator rule. Rules read the engine's immutable inputs
// and never mutate shared state, so any invocation order is safe.
type ruleFunc func(ctx context.Context) Result

// EngineOptions are the constructor-time dependencies of the Engine. Table,
// Resolver, Vocabulary and Policy are required for meaningful results;
// Translator, Probe, Headers and Logger may be left nil/empty.
type EngineOptions struct {
	Table      *metadata.Table
	Headers    http.Header
	Resolver   TermResolver
	Vocabulary *vocabulary.Validator
	Translator *i18n.Translator
	Probe      WebProbe
	Policy     Policy
	Logger     *zap.Logger
}

// Engine holds the rule set and the evaluation context shared by all rules.
type Engine struct {
	table      *metadata.Table
	headers    http.Header
	resolver   TermResolver
	vocab      *vocabulary.Validator
	translator *i18n.Translator
	probe      WebProbe
	policy     Policy
	logger     *zap.Logger

	rules map[string]ruleFunc
}

// NewEngine creates an Engine and registers the rule set.
func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	translator := opts.Translator
	if translator == nil {
		translator = i18n.MustLoad("en")
	}
	table := opts.Table
	if table == nil {
		table = metadata.NewTable(nil)
	}

	e := &Engine{
		table:      table,
		headers:    opts.Headers,
		resolver:   opts.Resolver,
		vocab:      opts.Vocabulary,
		translator: translator,
		probe:      opts.Probe,
		policy:     opts.Policy,
		logger:     logger,
	}

	e.rules = map[string]ruleFunc{
		// --- Findable ---
		"RDA-F1-01M": e.metadataIdentifierIsPersistent,
		"RDA-F1-01D": e.dataIdentifierIsPersistent,
		"RDA-F1-02M": e.metadataIdentifierIsUnique,
		"RDA-F1-02D": e.dataIdentifierIsUnique,
		"RDA-F2-01M": e.findabilityRichness,
		"RDA-F3-01M": e.metadataIncludesDataIdentifier,
		"RDA-F4-01M": e.metadataIsHarvestable,

		// --- Accessible ---
		"RDA-A1-01M":   e.accessInformationInMetadata,
		"RDA-A1-02M":   e.metadataManualAccess,
		"RDA-A1-02D":   e.dataManualAccess,
		"RDA-A1-03M":   e.metadataIdentifierResolves,
		"RDA-A1-03D":   e.dataIdentifierResolves,
		"RDA-A1-04M":   e.metadataProtocolIsStandardised,
		"RDA-A1-04D":   e.dataProtocolIsStandardised,
		"RDA-A1-05D":   e.dataAutomaticAccess,
		"RDA-A1.1-01M": e.metadataProtocolIsFree,
		"RDA-A1.1-01D": e.dataProtocolIsFree,
		"RDA-A1.2-01D": e.protocolSupportsAuthentication,
		"RDA-A2-01M":   e.metadataPreservationGuaranteed,

		// --- Interoperable ---
		"RDA-I1-01M": e.metadataUsesStandardVocabularies,
		"RDA-I1-01D": e.dataUsesStandardVocabularies,
		"RDA-I1-02M": e.metadataMachineUnderstandable,
		"RDA-I3-02M": e.metadataReferencesOtherData,
		"RDA-I3-03M": e.metadataQualifiedReferences,

		// --- Reusable ---
		"RDA-R1-01M":   e.reusabilityRichness,
		"RDA-R1.1-01M": e.licenseInformationPresent,
		"RDA-R1.1-02M": e.licenseIsStandard,
		"RDA-R1.1-03M": e.licenseIsMachineReadable,
		"RDA-R1.2-01M": e.provenanceInformationPresent,
		"RDA-R1.3-01M": e.metadataCompliesWithStandard,
		"RDA-R1.3-02M": e.metadataStandardMachineUnderstandable,
	}
	return e
}

// Names returns every invocable indicator id, aliases included, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.rules)+len(aliases))
	for name := range e.rules {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs one indicator by id. Alias ids forward to their target rule
// and return its result verbatim. A rule fault is contained: the indicator
// reports 0 points with an explanatory message and Evaluate returns nil.
func (e *Engine) Evaluate(ctx context.Context, name string) (Result, error) {
	canonical := name
	if target, ok := aliases[name]; ok {
		canonical = target
	}
	rule, ok := e.rules[canonical]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
	}
	return e.run(ctx, name, rule), nil
}

// EvaluateAll runs every registered indicator, aliases included, and never
// fails: a faulting rule degrades to a 0-point result for its id only.
func (e *Engine) EvaluateAll(ctx context.Context) map[string]Result {
	results := make(map[string]Result, len(e.rules)+len(aliases))
	for _, name := range e.Names() {
		result, err := e.Evaluate(ctx, name)
		if err != nil {
			// Names() only yields registered ids.
			continue
		}
		results[name] = result
	}
	return results
}

// run executes one rule under panic containment. A panicking rule scores 0
// with an explanatory message; the batch keeps going.
func (e *Engine) run(ctx context.Context, name string, rule ruleFunc) (result Result) {
	defer func() {
		if cause := recover(); cause != nil {
			e.logger.Error("indicator rule faulted",
				zap.String("indicator", name),
				zap.Any("cause", cause))
			result = single(0, e.tr("Indicator %s could not be evaluated due to an internal error", name))
		}
	}()
	return rule(ctx)
}

// tr renders a result message in the configured language.
func (e *Engine) tr(message string, args ...interface{}) string {
	return e.translator.T(message, args...)
}

// resolve fetches the metadata slices of a term id, degrading resolver
// errors to an empty resolution so the rule can score absence.
func (e *Engine) resolve(ctx context.Context, termID string, validate bool) []ResolvedTerm {
	if e.resolver == nil {
		return nil
	}
	terms, err := e.resolver.Resolve(ctx, termID, validate)
	if err != nil {
		e.logger.Warn("term resolution failed",
			zap.String("term", termID),
			zap.Error(err))
		return nil
	}
	return terms
}
