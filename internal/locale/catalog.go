// Package locale provides the localized string catalog for editor embeds.
//
// Strings live in an embedded YAML catalog keyed by locale. Lookup falls
// back from the exact tag to the bare language ("de-AT" to "de") and finally
// to English, so a missing translation never blocks an embed.
package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed strings.yaml
var rawCatalog []byte

// DefaultLocale is the catalog's fallback language.
const DefaultLocale = "en"

// Strings holds the per-locale strings an embed needs.
type Strings struct {
	// TitleTemplate combines a display name and the no-filename title into
	// the hosting document's title.
	TitleTemplate string `yaml:"title_template"`
	// NoFileTitle maps app type (word, excel, powerpoint) to the title
	// shown when no filename applies.
	NoFileTitle map[string]string `yaml:"no_file_title"`
}

// NoFile returns the no-filename title for the given app type.
func (s Strings) NoFile(appType string) string {
	return s.NoFileTitle[appType]
}

// Catalog is the parsed string catalog.
type Catalog struct {
	locales map[string]Strings
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var locales map[string]Strings
	if err := yaml.Unmarshal(rawCatalog, &locales); err != nil {
		return nil, fmt.Errorf("parse string catalog: %w", err)
	}
	if _, ok := locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("string catalog missing fallback locale %q", DefaultLocale)
	}
	return &Catalog{locales: locales}, nil
}

// MustLoad is Load for wiring paths where the embedded catalog is trusted.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Strings resolves the strings for a locale tag.
func (c *Catalog) Strings(locale string) Strings {
	tag := strings.ToLower(locale)
	if s, ok := c.locales[tag]; ok {
		return s
	}
	if lang, _, found := strings.Cut(tag, "-"); found {
		if s, ok := c.locales[lang]; ok {
			return s
		}
	}
	return c.locales[DefaultLocale]
}

// Locales lists the locales present in the catalog.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for tag := range c.locales {
		out = append(out, tag)
	}
	return out
}
