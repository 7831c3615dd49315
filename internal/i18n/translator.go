// SPDX-License-Identifier: Apache-2.0

// Package i18n renders the scoring engine's result messages in a configured
// language. The Translator is an explicit constructor-time dependency of
// the engine, not ambient state.
package i18n

import (
	"embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed data/*.yaml
var catalogFS embed.FS

// Translator formats result messages for one locale. Message keys are the
// English source strings; a key with no catalog entry renders as itself.
type Translator struct {
	locale   string
	messages map[string]string
}

// Load reads the embedded catalog for the given locale.
func Load(locale string) (*Translator, error) {
	raw, err := catalogFS.ReadFile("data/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no message catalog for locale %q: %w", locale, err)
	}
	var doc struct {
		Messages map[string]string `yaml:"messages"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("loading message catalog %q: %w", locale, err)
	}
	if doc.Messages == nil {
		doc.Messages = map[string]string{}
	}
	return &Translator{locale: locale, messages: doc.Messages}, nil
}

// MustLoad is Load for catalogs known to exist (the embedded English one).
func MustLoad(locale string) *Translator {
	t, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Locale returns the loaded locale code.
func (t *Translator) Locale() string {
	return t.locale
}

// T translates the message and interpolates the arguments.
func (t *Translator) T(message string, args ...interface{}) string {
	format, ok := t.messages[message]
	if !ok {
		format = message
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
