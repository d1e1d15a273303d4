package catalog

import (
	"strings"

	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// LocalizedEntry is a directory entry with its display name resolved.
type LocalizedEntry struct {
	Code           facts.CountryCode
	DisplayNameKey string
	DisplayName    string
}

// Localize resolves display names through translator. When the translator is
// nil, fails, or returns an empty string the key itself is used.
func Localize(entries []facts.DirectoryEntry, locale facts.Locale, translator interfaces.Translator) []LocalizedEntry {
	out := make([]LocalizedEntry, 0, len(entries))
	for _, entry := range entries {
		name := entry.DisplayNameKey
		if translator != nil {
			if translated, err := translator.Translate(string(locale), entry.DisplayNameKey); err == nil && strings.TrimSpace(translated) != "" {
				name = translated
			}
		}
		out = append(out, LocalizedEntry{
			Code:           entry.Code,
			DisplayNameKey: entry.DisplayNameKey,
			DisplayName:    name,
		})
	}
	return out
}

// NoOpTranslator returns every key unchanged.
type NoOpTranslator struct{}

// Translate implements interfaces.Translator.
func (NoOpTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	return key, nil
}
