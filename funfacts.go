package funfacts

import (
	"github.com/goliatone/go-funfacts/internal/audit"
	"github.com/goliatone/go-funfacts/internal/catalog"
	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/di"
	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

type (
	Category       = facts.Category
	Locale         = facts.Locale
	CountryCode    = facts.CountryCode
	FactList       = facts.FactList
	Table          = facts.Table
	Resolution     = facts.Resolution
	DirectoryEntry = facts.DirectoryEntry
	LocalizedEntry = catalog.LocalizedEntry
	AuditReport    = audit.Report
	AuditFinding   = audit.Finding
	Translator     = interfaces.Translator
)

// FactsService exports the catalog lookup contract.
type FactsService = catalog.Service

const (
	CategoryElectricity = facts.CategoryElectricity
	CategoryWater       = facts.CategoryWater
	DefaultCode         = facts.DefaultCode
	WorldCode           = facts.WorldCode
)

var (
	ErrUnknownLocale          = catalog.ErrUnknownLocale
	ErrUnknownCategory        = catalog.ErrUnknownCategory
	ErrDefaultLocaleNotLoaded = catalog.ErrDefaultLocaleNotLoaded
	ErrDocumentInvalid        = dataset.ErrDocumentInvalid
	ErrContentAudit           = audit.ErrContentAudit
)

// Module is the top level funfacts runtime façade. It is safe for concurrent use.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
// All content is loaded, audited and aggregated before New returns.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Facts returns the lookup service.
func (m *Module) Facts() FactsService {
	return m.container.Catalog()
}

// Table returns the aggregated table for a (locale, category) pair.
func (m *Module) Table(locale Locale, category Category) (*Table, error) {
	return m.Facts().Table(locale, category)
}

// Lookup returns the facts stored for code, without fallback.
func (m *Module) Lookup(locale Locale, category Category, code CountryCode) (FactList, bool, error) {
	return m.Facts().Lookup(locale, category, code)
}

// Resolve returns the facts for code, or the DEFAULT facts when code has no entry.
func (m *Module) Resolve(locale Locale, category Category, code CountryCode) (Resolution, error) {
	return m.Facts().Resolve(locale, category, code)
}

// World returns the WORLD facts for a pair.
func (m *Module) World(locale Locale, category Category) (FactList, error) {
	return m.Facts().World(locale, category)
}

// Directory returns the ordered country directory for locale.
func (m *Module) Directory(locale Locale) ([]DirectoryEntry, error) {
	return m.Facts().Directory(locale)
}

// LocalizedDirectory returns the directory with display names resolved through
// the configured translator.
func (m *Module) LocalizedDirectory(locale Locale) ([]LocalizedEntry, error) {
	entries, err := m.Directory(locale)
	if err != nil {
		return nil, err
	}
	if locale == "" {
		locale = m.Facts().DefaultLocale()
	}
	return catalog.Localize(entries, locale, m.container.Translator()), nil
}

// Locales lists the loaded locales.
func (m *Module) Locales() []Locale {
	return m.Facts().Locales()
}

// Categories lists the loaded categories.
func (m *Module) Categories() []Category {
	return m.Facts().Categories()
}

// Codes lists every key of a pair's table, reserved keys included.
func (m *Module) Codes(locale Locale, category Category) ([]CountryCode, error) {
	return m.Facts().Codes(locale, category)
}

// AuditReport returns the content audit produced during initialisation.
func (m *Module) AuditReport() AuditReport {
	return m.container.AuditReport()
}
