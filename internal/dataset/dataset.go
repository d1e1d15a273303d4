package dataset

import (
	"embed"
	"io/fs"
	"sort"

	"github.com/goliatone/go-funfacts/internal/facts"
)

// DefaultRegion names the document holding the reserved DEFAULT and WORLD keys.
const DefaultRegion = "default"

const manifestPath = "manifest.json"

//go:embed data
var embeddedData embed.FS

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// Embedded returns the compiled-in content tree rooted at the manifest.
func Embedded() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		panic("dataset: embedded data tree missing: " + err.Error())
	}
	return sub
}

// Manifest declares what a content tree contains and the region merge order.
type Manifest struct {
	Locales    []facts.Locale   `json:"locales"`
	Categories []facts.Category `json:"categories"`
	Regions    []string         `json:"regions"`
	// Mirrors groups locales that are expected to carry the same country codes.
	Mirrors [][]facts.Locale `json:"mirrors,omitempty"`
}

// HasLocale reports whether the manifest declares locale.
func (m Manifest) HasLocale(locale facts.Locale) bool {
	for _, candidate := range m.Locales {
		if candidate == locale {
			return true
		}
	}
	return false
}

// HasCategory reports whether the manifest declares category.
func (m Manifest) HasCategory(category facts.Category) bool {
	for _, candidate := range m.Categories {
		if candidate == category {
			return true
		}
	}
	return false
}

// Key addresses the content of one (locale, category) pair.
type Key struct {
	Locale   facts.Locale
	Category facts.Category
}

func (k Key) String() string {
	return string(k.Category) + "/" + string(k.Locale)
}

// Source holds the unmerged tables for one key, regions in merge order.
type Source struct {
	Key      Key
	Regions  []facts.RegionalTable
	Defaults facts.RegionalTable
}

// Aggregate merges the source into its lookup table.
func (s Source) Aggregate() *facts.Table {
	return facts.Aggregate(s.Regions, s.Defaults)
}

// Bundle is the decoded content tree.
type Bundle struct {
	Manifest    Manifest
	Sources     map[Key]Source
	Directories map[facts.Locale][]facts.DirectoryGroup
}

// Keys lists every loaded key ordered by category, then locale.
func (b *Bundle) Keys() []Key {
	if b == nil {
		return nil
	}
	keys := make([]Key, 0, len(b.Sources))
	for key := range b.Sources {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Locale < keys[j].Locale
	})
	return keys
}

// Directory returns the flattened country directory for locale.
func (b *Bundle) Directory(locale facts.Locale) []facts.DirectoryEntry {
	if b == nil {
		return nil
	}
	return facts.FlattenDirectory(b.Directories[locale])
}
