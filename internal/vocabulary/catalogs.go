// SPDX-License-Identifier: Apache-2.0

package vocabulary

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed data/spdx_licenses.yaml
var spdxCatalogRaw []byte

//go:embed data/iana_media_types.yaml
var ianaCatalogRaw []byte

// spdxCatalog holds the SPDX license list extract: canonical identifiers
// plus lowercase lookup tables for the loose textual match.
type spdxCatalog struct {
	ids        map[string]bool // canonical identifier, exact
	idsLower   map[string]bool
	namesLower map[string]bool
}

func loadSPDXCatalog() (*spdxCatalog, error) {
	var doc struct {
		Licenses map[string]string `yaml:"licenses"`
	}
	if err := yaml.Unmarshal(spdxCatalogRaw, &doc); err != nil {
		return nil, fmt.Errorf("loading SPDX catalog: %w", err)
	}
	catalog := &spdxCatalog{
		ids:        make(map[string]bool, len(doc.Licenses)),
		idsLower:   make(map[string]bool, len(doc.Licenses)),
		namesLower: make(map[string]bool, len(doc.Licenses)),
	}
	for id, name := range doc.Licenses {
		catalog.ids[id] = true
		catalog.idsLower[strings.ToLower(id)] = true
		catalog.namesLower[strings.ToLower(name)] = true
	}
	return catalog, nil
}

// matches checks a license value against the catalog. In machine-readable
// mode the value must be an exact canonical identifier; otherwise the value
// is reduced (license URL path, trailing .html, case) and matched against
// identifiers and full names.
func (c *spdxCatalog) matches(license string, machineReadable bool) bool {
	if machineReadable {
		return c.ids[strings.TrimSpace(license)]
	}
	reduced := reduceLicense(license)
	if reduced == "" {
		return false
	}
	return c.idsLower[reduced] || c.namesLower[reduced]
}

// reduceLicense strips the URL wrapping commonly found around license
// declarations, e.g. https://spdx.org/licenses/CC-BY-4.0.html -> cc-by-4.0.
func reduceLicense(license string) string {
	reduced := strings.TrimSpace(license)
	if i := strings.Index(reduced, "://"); i >= 0 {
		reduced = reduced[i+len("://"):]
		reduced = strings.TrimSuffix(reduced, "/")
		if j := strings.LastIndex(reduced, "/"); j >= 0 {
			reduced = reduced[j+1:]
		}
	}
	reduced = strings.TrimSuffix(reduced, ".html")
	reduced = strings.TrimSuffix(reduced, ".json")
	return strings.ToLower(reduced)
}

func loadIANAMediaTypes() (map[string]bool, error) {
	var doc struct {
		MediaTypes []string `yaml:"media_types"`
	}
	if err := yaml.Unmarshal(ianaCatalogRaw, &doc); err != nil {
		return nil, fmt.Errorf("loading IANA media types catalog: %w", err)
	}
	types := make(map[string]bool, len(doc.MediaTypes))
	for _, mt := range doc.MediaTypes {
		types[normalizeMediaType(mt)] = true
	}
	return types, nil
}

func normalizeMediaType(mediaType string) string {
	return strings.ToLower(strings.TrimSpace(mediaType))
}
