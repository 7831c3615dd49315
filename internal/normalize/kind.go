// SPDX-License-Identifier: Apache-2.0

// Package normalize turns the heterogeneous per-element values of a
// metadata record into canonical lists of typed values, one normalization
// rule per semantic element kind.
package normalize

// ElementKind is the semantic category of a metadata element. It selects
// which normalization rule applies; KindUnknown takes the fallback path.
type ElementKind int

const (
	KindUnknown ElementKind = iota
	KindMetadataIdentifier
	KindDataIdentifier
	KindTemporalCoverage
	KindSpatialCoverage
	KindPersonIdentifier
	KindFormat
	KindDate
	KindDescription
	KindType
	KindLanguage
	KindLicense
	KindOrganizationIdentifier
)

var kindNames = map[ElementKind]string{
	KindUnknown:                "Unknown",
	KindMetadataIdentifier:     "Metadata Identifier",
	KindDataIdentifier:         "Data Identifier",
	KindTemporalCoverage:       "Temporal Coverage",
	KindSpatialCoverage:        "Spatial Coverage",
	KindPersonIdentifier:       "Person Identifier",
	KindFormat:                 "Format",
	KindDate:                   "Date",
	KindDescription:            "Description",
	KindType:                   "Type",
	KindLanguage:               "Language",
	KindLicense:                "License",
	KindOrganizationIdentifier: "Organization Identifier",
}

var kindsByName = func() map[string]ElementKind {
	m := make(map[string]ElementKind, len(kindNames))
	for kind, name := range kindNames {
		m[name] = kind
	}
	return m
}()

// String returns the canonical display name of the kind.
func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindFromName maps a term display name (as used in the term map) to its
// ElementKind. Unrecognised names yield KindUnknown, which Gather handles
// through the fallback path.
func KindFromName(name string) ElementKind {
	if kind, ok := kindsByName[name]; ok {
		return kind
	}
	return KindUnknown
}
