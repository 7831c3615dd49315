// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// metadataUsesStandardVocabularies implements RDA-I1-01M: metadata uses
// knowledge representation expressed in a standardised format. Points are
// proportional to the number of configured vocabulary elements that
// validate.
func (e *Engine) metadataUsesStandardVocabularies(ctx context.Context) Result {
	return e.evalValidatedBasic(e.resolve(ctx, "terms_cv", true))
}

// dataUsesStandardVocabularies implements RDA-I1-01D: data uses knowledge
// representation expressed in a standardised format, judged by looking up
// each declared data standard in the standards registry.
func (e *Engine) dataUsesStandardVocabularies(ctx context.Context) Result {
	standards := e.policy.DataStandards
	if len(standards) == 0 {
		return single(0, e.tr("No data standards declared in configuration"))
	}

	var registered []string
	for _, standard := range standards {
		found, err := e.vocab.ValidateDataStandard(ctx, standard)
		if err != nil {
			e.logger.Warn("standards registry lookup failed",
				zap.String("standard", standard),
				zap.Error(err))
			continue
		}
		if found {
			registered = append(registered, standard)
		}
	}

	points := float64(len(registered)) / float64(len(standards)) * 100
	msg := e.tr("Found %d (%s) out of %d (%s) data standards using standard vocabularies",
		len(registered), strings.Join(registered, ", "),
		len(standards), strings.Join(standards, ", "))
	return single(points, msg)
}

// metadataMachineUnderstandable implements RDA-I1-02M: metadata uses a
// machine-understandable knowledge representation. Two checks: the
// serialization media type is announced through the HTTP headers, and that
// media type is listed under the IANA Internet Media Types. Both must pass
// for the full score; each check reports its own message.
func (e *Engine) metadataMachineUnderstandable(ctx context.Context) Result {
	var messages []Message
	points := 0.0

	contentType := ""
	if e.headers != nil {
		contentType = e.headers.Get("Content-Type")
	}

	if contentType != "" {
		messages = append(messages, Message{
			Message: e.tr("Found media type '%s' through HTTP headers", contentType),
			Points:  100,
		})
	} else {
		messages = append(messages, Message{
			Message: e.tr("The metadata standard in use does not provide a machine-understandable knowledge expression: %s",
				strings.Join(e.policy.MetadataStandards, ", ")),
			Points: 0,
		})
	}

	// Media-type parameters are not stripped: the membership check is
	// deliberately exact.
	if e.vocab.IsIANAMediaType(contentType) {
		points = 100
		messages = append(messages, Message{
			Message: e.tr("Metadata serialization format '%s' listed under IANA Media Types", contentType),
			Points:  100,
		})
	} else {
		messages = append(messages, Message{
			Message: e.tr("Metadata serialization format '%s' is not listed under IANA Internet Media Types", contentType),
			Points:  0,
		})
	}

	return Result{Points: points, Messages: messages}
}

// metadataReferencesOtherData implements RDA-I3-02M: metadata includes
// references to other data. Not supported by the repository model; a fixed
// policy fact.
func (e *Engine) metadataReferencesOtherData(ctx context.Context) Result {
	return single(0, e.tr("No references to other data."))
}

// metadataQualifiedReferences implements RDA-I3-03M: metadata includes
// qualified references to other metadata. Satisfied only when at least one
// configured relation element validates against at least one configured
// vocabulary; the message names the element, the vocabulary and the
// matching value(s) for auditability.
func (e *Engine) metadataQualifiedReferences(ctx context.Context) Result {
	terms := e.resolve(ctx, "terms_relations", true)

	var references []string
	for _, term := range terms {
		for _, vocabularyID := range sortedKeys(term.Validation) {
			partition := term.Validation[vocabularyID]
			if len(partition.Valid) == 0 {
				continue
			}
			references = append(references, fmt.Sprintf("'%s' element uses vocabulary %s in '%s'",
				term.Element, vocabularyID, strings.Join(partition.Valid, ", ")))
		}
	}

	if len(references) == 0 {
		return single(0, e.tr("Metadata does not have qualified references to other metadata"))
	}
	return single(100, e.tr("Metadata has qualified references to other metadata: %s",
		strings.Join(references, ", ")))
}
