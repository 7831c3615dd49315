// SPDX-License-Identifier: Apache-2.0

// Package pid detects the identifier scheme(s) a value conforms to.
// Persistency and global uniqueness of (meta)data identifiers are scored
// from the detected schemes.
package pid

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Scheme is a recognised identifier scheme.
type Scheme string

const (
	SchemeDOI    Scheme = "doi"
	SchemeHandle Scheme = "handle"
	SchemeORCID  Scheme = "orcid"
	SchemeUUID   Scheme = "uuid"
	SchemeURL    Scheme = "url"
)

var (
	doiPattern    = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:a-z0-9]+`)
	handlePattern = regexp.MustCompile(`^(hdl:|https?://hdl\.handle\.net/)\d+(\.\d+)*/.+`)
	orcidPattern  = regexp.MustCompile(`(?i)(^|/)\d{4}-\d{4}-\d{4}-\d{3}[0-9X](/|$)`)
)

// persistentSchemes are the schemes backed by a resolution service with a
// persistence commitment.
var persistentSchemes = map[Scheme]bool{
	SchemeDOI:    true,
	SchemeHandle: true,
	SchemeORCID:  true,
}

// uniqueSchemes are the schemes that guarantee global uniqueness.
var uniqueSchemes = map[Scheme]bool{
	SchemeDOI:    true,
	SchemeHandle: true,
	SchemeORCID:  true,
	SchemeUUID:   true,
}

// Detect returns all schemes the given value conforms to. An empty slice
// means the value is not a recognisable identifier.
func Detect(value string) []Scheme {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var schemes []Scheme
	if doiPattern.MatchString(value) {
		schemes = append(schemes, SchemeDOI)
	}
	if handlePattern.MatchString(value) {
		schemes = append(schemes, SchemeHandle)
	}
	if orcidPattern.MatchString(value) {
		schemes = append(schemes, SchemeORCID)
	}
	if _, err := uuid.Parse(value); err == nil {
		schemes = append(schemes, SchemeUUID)
	}
	if u, err := url.Parse(value); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		schemes = append(schemes, SchemeURL)
	}
	return schemes
}

// IsPersistent reports whether the value uses at least one persistent
// identifier scheme.
func IsPersistent(value string) bool {
	for _, s := range Detect(value) {
		if persistentSchemes[s] {
			return true
		}
	}
	return false
}

// IsGloballyUnique reports whether the value uses at least one globally
// unique identifier scheme.
func IsGloballyUnique(value string) bool {
	for _, s := range Detect(value) {
		if uniqueSchemes[s] {
			return true
		}
	}
	return false
}

// Protocol returns the lowercase URL scheme of the value, or "" if the value
// is not a URL.
func Protocol(value string) string {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}
