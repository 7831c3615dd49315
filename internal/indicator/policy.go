// SPDX-License-Identifier: Apache-2.0

package indicator

import "github.com/fairscanproj/fairscan/internal/config"

// Policy carries the repository-level facts the rules score against:
// declared access arrangements, supported protocols and the standards the
// repository commits to. These are configuration constants, not values
// derived from the subject's metadata.
type Policy struct {
	ItemID   string
	Endpoint string

	AccessProtocols        []string
	RegistrationRequired   bool
	RegistrationNote       string
	MetadataAccessManual   []string
	DataAccessManual       []string
	MetadataAuthentication []string
	MetadataPersistence    []string

	MetadataStandards []string
	DataStandards     []string
	FindabilityTerms  []string
	Vocabularies      map[string]string
}

// PolicyFromConfig projects the loaded configuration onto a Policy for the
// given evaluation subject.
func PolicyFromConfig(cfg *config.Config, itemID string) Policy {
	return Policy{
		ItemID:                 itemID,
		Endpoint:               cfg.Endpoint,
		AccessProtocols:        cfg.Access.Protocols,
		RegistrationRequired:   cfg.Access.RegistrationRequired,
		RegistrationNote:       cfg.Access.RegistrationNote,
		MetadataAccessManual:   cfg.Access.MetadataAccessManual,
		DataAccessManual:       cfg.Access.DataAccessManual,
		MetadataAuthentication: cfg.Access.MetadataAuthentication,
		MetadataPersistence:    cfg.Access.MetadataPersistence,
		MetadataStandards:      cfg.Standards.Metadata,
		DataStandards:          cfg.Standards.Data,
		FindabilityTerms:       cfg.FindabilityTerms,
		Vocabularies:           cfg.Vocabularies,
	}
}
