package catalog

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// Service is the read-only lookup surface over every loaded (locale, category) table.
type Service interface {
	Locales() []facts.Locale
	Categories() []facts.Category
	DefaultLocale() facts.Locale
	Table(locale facts.Locale, category facts.Category) (*facts.Table, error)
	Lookup(locale facts.Locale, category facts.Category, code facts.CountryCode) (facts.FactList, bool, error)
	Resolve(locale facts.Locale, category facts.Category, code facts.CountryCode) (facts.Resolution, error)
	World(locale facts.Locale, category facts.Category) (facts.FactList, error)
	Codes(locale facts.Locale, category facts.Category) ([]facts.CountryCode, error)
	Directory(locale facts.Locale) ([]facts.DirectoryEntry, error)
}

// Options narrows what Build keeps from a bundle.
type Options struct {
	// DefaultLocale is used when a caller passes an empty locale. Defaults to the
	// first loaded locale.
	DefaultLocale facts.Locale
	// Locales and Categories select a subset of the manifest. Empty keeps everything.
	Locales    []facts.Locale
	Categories []facts.Category
	Logger     interfaces.Logger
}

// Catalog holds the aggregated tables and directories built at initialisation.
// Nothing is mutated after Build returns.
type Catalog struct {
	defaultLocale facts.Locale
	locales       []facts.Locale
	categories    []facts.Category
	tables        map[dataset.Key]*facts.Table
	directories   map[facts.Locale][]facts.DirectoryEntry
	logger        interfaces.Logger
}

var _ Service = (*Catalog)(nil)

// Build aggregates every selected source of bundle into its lookup table.
func Build(bundle *dataset.Bundle, opts Options) (*Catalog, error) {
	if bundle == nil {
		return nil, fmt.Errorf("catalog: bundle is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	locales, err := selectLocales(bundle.Manifest, opts.Locales)
	if err != nil {
		return nil, err
	}
	categories, err := selectCategories(bundle.Manifest, opts.Categories)
	if err != nil {
		return nil, err
	}

	defaultLocale := facts.Locale(strings.TrimSpace(string(opts.DefaultLocale)))
	if defaultLocale == "" && len(locales) > 0 {
		defaultLocale = locales[0]
	}
	if defaultLocale != "" && !containsLocale(locales, defaultLocale) {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLocaleNotLoaded, defaultLocale)
	}

	c := &Catalog{
		defaultLocale: defaultLocale,
		locales:       locales,
		categories:    categories,
		tables:        make(map[dataset.Key]*facts.Table, len(locales)*len(categories)),
		directories:   make(map[facts.Locale][]facts.DirectoryEntry, len(locales)),
		logger:        logger,
	}

	for _, category := range categories {
		for _, locale := range locales {
			key := dataset.Key{Locale: locale, Category: category}
			table := bundle.Sources[key].Aggregate()
			c.tables[key] = table
			logging.WithLookupContext(logger, string(locale), string(category), "").
				Debug("catalog.table.built", "codes", table.Len())
		}
	}
	for _, locale := range locales {
		c.directories[locale] = bundle.Directory(locale)
	}

	logger.Info("catalog.ready",
		"locales", len(locales),
		"categories", len(categories),
		"default_locale", string(defaultLocale),
	)
	return c, nil
}

// Locales returns the loaded locales in manifest order.
func (c *Catalog) Locales() []facts.Locale {
	return append([]facts.Locale(nil), c.locales...)
}

// Categories returns the loaded categories in manifest order.
func (c *Catalog) Categories() []facts.Category {
	return append([]facts.Category(nil), c.categories...)
}

// DefaultLocale returns the locale used for empty locale arguments.
func (c *Catalog) DefaultLocale() facts.Locale {
	return c.defaultLocale
}

// Table returns the aggregated table for a pair. An empty locale selects the default locale.
func (c *Catalog) Table(locale facts.Locale, category facts.Category) (*facts.Table, error) {
	locale = c.localeOrDefault(locale)
	if !containsLocale(c.locales, locale) {
		return nil, unknownLocale(string(locale))
	}
	table, ok := c.tables[dataset.Key{Locale: locale, Category: category}]
	if !ok {
		return nil, unknownCategory(string(category))
	}
	return table, nil
}

// Lookup returns the facts stored under code without any fallback.
func (c *Catalog) Lookup(locale facts.Locale, category facts.Category, code facts.CountryCode) (facts.FactList, bool, error) {
	table, err := c.Table(locale, category)
	if err != nil {
		return nil, false, err
	}
	list, ok := table.Get(code)
	return list, ok, nil
}

// Resolve returns the facts for code or, when it has no entry, the DEFAULT facts.
func (c *Catalog) Resolve(locale facts.Locale, category facts.Category, code facts.CountryCode) (facts.Resolution, error) {
	table, err := c.Table(locale, category)
	if err != nil {
		return facts.Resolution{}, err
	}
	res := table.Resolve(code)
	if res.Fallback {
		logging.WithLookupContext(c.logger, string(c.localeOrDefault(locale)), string(category), string(code)).
			Debug("catalog.lookup.fallback", "resolved", string(res.Code))
	}
	return res, nil
}

// World returns the WORLD facts for a pair.
func (c *Catalog) World(locale facts.Locale, category facts.Category) (facts.FactList, error) {
	table, err := c.Table(locale, category)
	if err != nil {
		return nil, err
	}
	return table.World(), nil
}

// Codes lists every key of a pair's table, reserved keys included.
func (c *Catalog) Codes(locale facts.Locale, category facts.Category) ([]facts.CountryCode, error) {
	table, err := c.Table(locale, category)
	if err != nil {
		return nil, err
	}
	return table.Codes(), nil
}

// Directory returns the flattened country directory for locale.
func (c *Catalog) Directory(locale facts.Locale) ([]facts.DirectoryEntry, error) {
	locale = c.localeOrDefault(locale)
	entries, ok := c.directories[locale]
	if !ok {
		return nil, unknownLocale(string(locale))
	}
	return append([]facts.DirectoryEntry(nil), entries...), nil
}

func (c *Catalog) localeOrDefault(locale facts.Locale) facts.Locale {
	if locale == "" {
		return c.defaultLocale
	}
	return locale
}

func selectLocales(manifest dataset.Manifest, requested []facts.Locale) ([]facts.Locale, error) {
	if len(requested) == 0 {
		return append([]facts.Locale(nil), manifest.Locales...), nil
	}
	out := make([]facts.Locale, 0, len(requested))
	for _, locale := range requested {
		if !manifest.HasLocale(locale) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
		}
		if !containsLocale(out, locale) {
			out = append(out, locale)
		}
	}
	return out, nil
}

func selectCategories(manifest dataset.Manifest, requested []facts.Category) ([]facts.Category, error) {
	if len(requested) == 0 {
		return append([]facts.Category(nil), manifest.Categories...), nil
	}
	out := make([]facts.Category, 0, len(requested))
	for _, category := range requested {
		if !manifest.HasCategory(category) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
		}
		duplicate := false
		for _, existing := range out {
			if existing == category {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, category)
		}
	}
	return out, nil
}

func containsLocale(locales []facts.Locale, locale facts.Locale) bool {
	for _, candidate := range locales {
		if candidate == locale {
			return true
		}
	}
	return false
}
