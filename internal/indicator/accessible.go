// SPDX-License-Identifier: Apache-2.0

package indicator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/metadata/decoders"
	"github.com/fairscanproj/fairscan/internal/normalize"
	"github.com/fairscanproj/fairscan/internal/pid"
)

// accessInformationInMetadata implements RDA-A1-01M: metadata contains
// information to enable the user to get access to the data. The primary
// signal (access metadata present) combines with the secondary signal
// (registration-mediated manual access, a fixed repository policy fact)
// through an explicit decision table. The table is a deliberate business
// rule; keep all four branches as written.
func (e *Engine) accessInformationInMetadata(ctx context.Context) Result {
	terms := e.resolve(ctx, "terms_access", false)

	var messages []Message
	primary := 0.0
	for _, term := range terms {
		for _, value := range normalize.Strings(term.Values) {
			primary = 100
			messages = append(messages, Message{
				Message: e.tr("Metadata found for access") + ": " + value,
				Points:  100,
			})
		}
	}

	secondary := 0.0
	if e.policy.RegistrationRequired {
		secondary = 100
	}
	note := e.policy.RegistrationNote

	points := primary
	switch {
	case secondary == 100 && primary == 100:
		messages = append(messages, Message{
			Message: withNote(e.tr("Data can be accessed manually"), note),
			Points:  secondary,
		})
	case secondary == 0 && primary == 100:
		messages = append(messages, Message{
			Message: e.tr("Data can not be accessed manually"),
			Points:  secondary,
		})
	case secondary == 100 && primary == 0:
		messages = append(messages, Message{
			Message: withNote(e.tr("Data can be accessed manually"), note),
			Points:  secondary,
		})
		points = 100
	default:
		messages = append(messages, Message{
			Message: e.tr("No access information can be found in the metadata. Please, add information to the following term(s)") + ": terms_access",
			Points:  0,
		})
	}

	return Result{Points: points, Messages: messages}
}

func withNote(msg, note string) string {
	if note == "" {
		return msg
	}
	return msg + " | " + note
}

// metadataManualAccess implements RDA-A1-02M: metadata can be accessed
// manually. The landing page of the subject is fetched and inspected for an
// embedded JSON-LD record. Retrieval problems degrade to 0 points; they
// never abort the batch.
func (e *Engine) metadataManualAccess(ctx context.Context) Result {
	if e.probe == nil {
		return single(0, e.tr("Landing page could not be retrieved from %s", e.policy.ItemID))
	}
	page, err := e.probe.FetchPage(ctx, e.policy.ItemID)
	if err != nil {
		e.logger.Warn("landing page retrieval failed",
			zap.String("url", e.policy.ItemID),
			zap.Error(err))
		return single(0, e.tr("Landing page could not be retrieved from %s", e.policy.ItemID))
	}

	blocks, err := decoders.ExtractJSONLD(page)
	if err != nil || len(blocks) == 0 {
		return single(0, e.tr("No JSON-LD available in the landing page"))
	}
	return single(100, e.tr("JSON-LD available in the landing page. Javascript takes care of formatting it for human readability"))
}

// dataManualAccess implements RDA-A1-02D: data can be accessed manually,
// judged by the resolvability of the documented manual-access link.
func (e *Engine) dataManualAccess(ctx context.Context) Result {
	if len(e.policy.DataAccessManual) > 0 && e.probe != nil {
		if e.probe.CheckLink(ctx, e.policy.DataAccessManual[0]) {
			return single(100, e.tr("Documentation for the manual obtention of the data can be found in %s",
				e.policy.DataAccessManual[0]))
		}
	}
	return single(0, e.tr("No reference has been found for the manual obtention of the data"))
}

// metadataIdentifierResolves implements RDA-A1-03M: the metadata identifier
// resolves to a metadata record. The record being non-empty means it was
// recovered through the identifier when the session was built.
func (e *Engine) metadataIdentifierResolves(ctx context.Context) Result {
	if e.table.IsEmpty() {
		return single(0, e.tr("Metadata record cannot be retrieved from metadata identifier: %s", e.policy.ItemID))
	}
	return single(100, e.tr("Metadata record could be retrieved from metadata identifier: %s", e.policy.ItemID))
}

// dataIdentifierResolves implements RDA-A1-03D: the data identifier
// resolves to the digital object. Access is registration-mediated, a fixed
// repository policy fact.
func (e *Engine) dataIdentifierResolves(ctx context.Context) Result {
	msg := e.policy.RegistrationNote
	if msg == "" {
		msg = e.tr("Data can be downloaded upon registration in the repository website")
	}
	return single(100, msg)
}

// metadataProtocolIsStandardised implements RDA-A1-04M: metadata is
// accessed through a standardised protocol.
func (e *Engine) metadataProtocolIsStandardised(ctx context.Context) Result {
	result, _ := e.metadataProtocol()
	return result
}

// metadataProtocol scores the endpoint protocol and returns it for the
// free-protocol rule to reword.
func (e *Engine) metadataProtocol() (Result, string) {
	protocol := pid.Protocol(e.policy.Endpoint)
	if !containsString(e.policy.AccessProtocols, protocol) {
		return single(0, e.tr("Found a non-standarised protocol to access the metadata record: %s",
			strings.ToUpper(protocol))), protocol
	}
	return single(100, e.tr("Found a standarised protocol to access the metadata record: %s",
		strings.ToUpper(protocol))), protocol
}

// dataProtocolIsStandardised implements RDA-A1-04D: data is accessible
// through a standardised protocol, judged over the download links declared
// in the access metadata.
func (e *Engine) dataProtocolIsStandardised(ctx context.Context) Result {
	result, _ := e.dataProtocols(ctx)
	return result
}

// dataProtocols scores the download-link protocols and returns the
// standardised ones for the free-protocol rule to reword.
func (e *Engine) dataProtocols(ctx context.Context) (Result, []string) {
	links := downloadLinks(e.resolve(ctx, "terms_access", false))
	if len(links) == 0 {
		return single(0, e.tr("Could not check data access protocol: no download link found in the metadata")), nil
	}

	var protocols []string
	for _, link := range links {
		if protocol := pid.Protocol(link); containsString(e.policy.AccessProtocols, protocol) {
			protocols = append(protocols, protocol)
		}
	}
	if len(protocols) == 0 {
		return single(0, e.tr("None of the protocols used to access the data is standardised: %s",
			strings.Join(links, ", "))), nil
	}
	return single(100, e.tr("Found %d standarised protocols to access the data: %s",
		len(protocols), strings.ToUpper(strings.Join(protocols, " ")))), protocols
}

// downloadLinks keeps the resolved values that look like absolute URLs.
func downloadLinks(terms []ResolvedTerm) []string {
	var links []string
	for _, value := range termStrings(terms) {
		if strings.Contains(value, "://") && pid.Protocol(value) != "" {
			links = append(links, value)
		}
	}
	return links
}

// dataAutomaticAccess implements RDA-A1-05D: data can be accessed
// automatically. The repository does not expose machine-actionable data
// access; this is a policy fact, scored as a named rule so it stays
// independently testable.
func (e *Engine) dataAutomaticAccess(ctx context.Context) Result {
	return single(0, e.tr("The repository does not support machine-actionable access to data"))
}

// metadataProtocolIsFree implements RDA-A1.1-01M: metadata is accessible
// through a free access protocol. Reuses the standardised-protocol check
// and rewords the positive outcome.
func (e *Engine) metadataProtocolIsFree(ctx context.Context) Result {
	result, protocol := e.metadataProtocol()
	if result.Points == 100 {
		return single(100, e.tr("Found a free protocol to access the metadata record: %s",
			strings.ToUpper(protocol)))
	}
	return result
}

// dataProtocolIsFree implements RDA-A1.1-01D: data is accessible through a
// free access protocol.
func (e *Engine) dataProtocolIsFree(ctx context.Context) Result {
	result, protocols := e.dataProtocols(ctx)
	if result.Points == 100 {
		return single(100, e.tr("Found free protocol/s to access the data: %s",
			strings.Join(protocols, " ")))
	}
	return single(0, e.tr("Could not check if data access protocol/s are free: protocols are not available (see RDA-A1-04D)"))
}

// protocolSupportsAuthentication implements RDA-A1.2-01D: the protocol
// allows for authentication and authorisation where necessary.
func (e *Engine) protocolSupportsAuthentication(ctx context.Context) Result {
	if len(e.policy.MetadataAuthentication) > 0 {
		return single(100, e.tr("The authentication is given by: %s", e.policy.MetadataAuthentication[0]))
	}
	return single(0, e.tr("The repository does not provide authentication or authorisation protocols"))
}

// metadataPreservationGuaranteed implements RDA-A2-01M: metadata remains
// accessible even when the data is no longer available, per the published
// preservation policy.
func (e *Engine) metadataPreservationGuaranteed(ctx context.Context) Result {
	if len(e.policy.MetadataPersistence) > 0 {
		return single(100, e.tr("Preservation policy is available at: %s", e.policy.MetadataPersistence[0]))
	}
	return single(100, e.tr("Metadata is preserved by repository policy even when the data is no longer available"))
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
