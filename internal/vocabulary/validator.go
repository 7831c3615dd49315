// SPDX-License-Identifier: Apache-2.0

// Package vocabulary validates candidate metadata values against external
// controlled vocabularies: the SPDX license list, the IANA Internet Media
// Types registry and a cross-domain standards registry.
package vocabulary

import (
	"context"

	"go.uber.org/zap"

	"github.com/fairscanproj/fairscan/internal/pid"
)

// Partition splits the input values of one vocabulary into the ones that
// validated and the ones that did not. Every input value lands in exactly
// one of the two lists.
type Partition struct {
	Valid    []string `json:"valid"`
	NonValid []string `json:"non_valid"`
}

// ValidationResult maps a vocabulary id to its Partition. A vocabulary id
// with no implemented backend contributes no entry at all: callers must
// check key presence before reading absence as failure.
type ValidationResult map[string]Partition

// HasValid reports whether any vocabulary in the result validated at least
// one value.
func (r ValidationResult) HasValid() bool {
	for _, partition := range r {
		if len(partition.Valid) > 0 {
			return true
		}
	}
	return false
}

// Validator checks values against the supported vocabulary backends.
type Validator struct {
	spdx     *spdxCatalog
	iana     map[string]bool
	registry RegistryClient
	logger   *zap.Logger
}

// NewValidator creates a Validator. The registry client may be nil when no
// standards registry is configured; ValidateDataStandard then reports an
// error.
func NewValidator(registry RegistryClient, logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	spdx, err := loadSPDXCatalog()
	if err != nil {
		return nil, err
	}
	iana, err := loadIANAMediaTypes()
	if err != nil {
		return nil, err
	}
	return &Validator{
		spdx:     spdx,
		iana:     iana,
		registry: registry,
		logger:   logger,
	}, nil
}

// ValidateLicenses partitions the licenses into valid/non-valid per
// configured vocabulary. Only the spdx backend is implemented; other
// vocabulary ids are skipped with a warning and omitted from the result.
// machineReadable requires an exact canonical SPDX identifier; otherwise a
// looser textual match (license URL, full name, case differences) counts.
func (v *Validator) ValidateLicenses(licenses []string, vocabularies map[string]string, machineReadable bool) ValidationResult {
	result := make(ValidationResult)
	for vocabularyID := range vocabularies {
		switch vocabularyID {
		case "spdx":
			partition := Partition{Valid: []string{}, NonValid: []string{}}
			for _, license := range licenses {
				if v.spdx.matches(license, machineReadable) {
					v.logger.Debug("license validated against SPDX vocabulary", zap.String("license", license))
					partition.Valid = append(partition.Valid, license)
				} else {
					v.logger.Warn("could not find any license match in SPDX vocabulary", zap.String("license", license))
					partition.NonValid = append(partition.NonValid, license)
				}
			}
			result[vocabularyID] = partition
		default:
			v.logger.Warn("validation of vocabulary not yet implemented", zap.String("vocabulary", vocabularyID))
		}
	}
	return result
}

// ValidateFormats partitions the data formats per configured vocabulary.
// Only the imtypes (IANA media types) backend is implemented; other ids are
// skipped with a warning.
func (v *Validator) ValidateFormats(formats []string, vocabularies map[string]string) ValidationResult {
	result := make(ValidationResult)
	for vocabularyID := range vocabularies {
		switch vocabularyID {
		case "imtypes":
			partition := Partition{Valid: []string{}, NonValid: []string{}}
			for _, format := range formats {
				if v.IsIANAMediaType(format) {
					partition.Valid = append(partition.Valid, format)
				} else {
					v.logger.Warn("format does not comply with IANA Internet Media Types vocabulary", zap.String("format", format))
					partition.NonValid = append(partition.NonValid, format)
				}
			}
			result[vocabularyID] = partition
		default:
			v.logger.Warn("validation of vocabulary not yet implemented", zap.String("vocabulary", vocabularyID))
		}
	}
	return result
}

// ValidateIdentifiers partitions person/organization identifiers per
// configured vocabulary. Only the orcid backend is implemented; other ids
// are skipped with a warning.
func (v *Validator) ValidateIdentifiers(identifiers []string, vocabularies map[string]string) ValidationResult {
	result := make(ValidationResult)
	for vocabularyID := range vocabularies {
		switch vocabularyID {
		case "orcid":
			partition := Partition{Valid: []string{}, NonValid: []string{}}
			for _, id := range identifiers {
				if isORCID(id) {
					partition.Valid = append(partition.Valid, id)
				} else {
					v.logger.Warn("identifier does not comply with the ORCID vocabulary", zap.String("identifier", id))
					partition.NonValid = append(partition.NonValid, id)
				}
			}
			result[vocabularyID] = partition
		default:
			v.logger.Warn("validation of vocabulary not yet implemented", zap.String("vocabulary", vocabularyID))
		}
	}
	return result
}

// IsSPDXLicense reports whether the license matches the SPDX license list.
func (v *Validator) IsSPDXLicense(license string, machineReadable bool) bool {
	return v.spdx.matches(license, machineReadable)
}

// IsIANAMediaType reports exact membership of the media type in the IANA
// registry extract. Media-type parameters (e.g. ";charset=utf-8") are not
// stripped: the check is deliberately exact.
func (v *Validator) IsIANAMediaType(mediaType string) bool {
	return v.iana[normalizeMediaType(mediaType)]
}

// ValidateDataStandard reports whether the abbreviation is registered in
// the standards registry. Only an exact abbreviation match among the
// returned entries counts; substring and fuzzy matches are rejected.
func (v *Validator) ValidateDataStandard(ctx context.Context, abbreviation string) (bool, error) {
	if v.registry == nil {
		return false, ErrNoRegistry
	}
	entries, err := v.registry.LookupStandard(ctx, abbreviation)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Abbreviation == abbreviation {
			return true, nil
		}
	}
	v.logger.Warn("standard not found under standards registry", zap.String("abbreviation", abbreviation))
	return false, nil
}

func isORCID(identifier string) bool {
	for _, scheme := range pid.Detect(identifier) {
		if scheme == pid.SchemeORCID {
			return true
		}
	}
	return false
}
