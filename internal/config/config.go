// SPDX-License-Identifier: Apache-2.0

// Package config loads the evaluation configuration: the term map binding
// indicator term ids to metadata element names, the vocabulary registry,
// and the repository's access-policy facts.
package config

// TermBinding binds one metadata element name to the semantic kind its
// values should be normalized as. An empty kind leaves the values on the
// fallback path.
type TermBinding struct {
	Element string `yaml:"element"`
	Kind    string `yaml:"kind"`
}

// Registry points at the cross-domain standards registry API.
type Registry struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Access holds the repository's access-policy facts. These are declared
// policy constants, not derived values.
type Access struct {
	Protocols              []string `yaml:"protocols"`
	RegistrationRequired   bool     `yaml:"registration_required"`
	RegistrationNote       string   `yaml:"registration_note"`
	MetadataAccessManual   []string `yaml:"metadata_access_manual"`
	DataAccessManual       []string `yaml:"data_access_manual"`
	MetadataAuthentication []string `yaml:"metadata_authentication"`
	MetadataPersistence    []string `yaml:"metadata_persistence"`
}

// Standards declares the metadata standard(s) the repository follows and
// the data standards its products use.
type Standards struct {
	Metadata []string `yaml:"metadata"`
	Data     []string `yaml:"data"`
}

// Config is the full evaluation configuration.
type Config struct {
	Endpoint          string                   `yaml:"endpoint"`
	Language          string                   `yaml:"language"`
	Terms             map[string][]TermBinding `yaml:"terms"`
	Vocabularies      map[string]string        `yaml:"vocabularies"`
	Registry          Registry                 `yaml:"registry"`
	Access            Access                   `yaml:"access"`
	Standards         Standards                `yaml:"standards"`
	FindabilityTerms  []string                 `yaml:"findability_terms"`
}
