package factscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-funfacts/internal/audit"
	"github.com/goliatone/go-funfacts/internal/catalog"
	"github.com/goliatone/go-funfacts/internal/facts"
	factrules "github.com/goliatone/go-funfacts/internal/validation"
)

const (
	lookupFactsMessageType   = "funfacts.facts.lookup"
	listDirectoryMessageType = "funfacts.directory.list"
	auditContentMessageType  = "funfacts.content.audit"
)

// LookupResult is the outcome of a LookupFactsCommand.
type LookupResult struct {
	Locale    facts.Locale
	Category  facts.Category
	Requested facts.CountryCode
	Code      facts.CountryCode
	Facts     facts.FactList
	Fallback  bool
	Found     bool
}

// LookupCallback receives lookup results synchronously from the handler.
type LookupCallback func(LookupResult)

// LookupFactsCommand fetches the facts for one country. With Fallback set a
// country without an entry resolves to DEFAULT; otherwise the result is empty.
type LookupFactsCommand struct {
	Locale         string         `json:"locale,omitempty"`
	Category       string         `json:"category"`
	Country        string         `json:"country"`
	Fallback       bool           `json:"fallback,omitempty"`
	ResultCallback LookupCallback `json:"-"`
}

// Type implements command.Message.
func (LookupFactsCommand) Type() string { return lookupFactsMessageType }

// Validate ensures the category and country are present and well-formed.
// Country accepts ISO codes as well as the reserved DEFAULT and WORLD keys.
func (m LookupFactsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Locale, factrules.Locale),
		validation.Field(&m.Category, validation.Required, factrules.Category),
		validation.Field(&m.Country, validation.Required, validation.By(countryOrReserved)),
	)
}

func countryOrReserved(value any) error {
	code, _ := value.(string)
	if facts.CountryCode(code).IsReserved() {
		return nil
	}
	return factrules.CountryCode.Validate(code)
}

// DirectoryResult carries the directory for one locale.
type DirectoryResult struct {
	Locale  facts.Locale
	Entries []catalog.LocalizedEntry
}

// DirectoryCallback receives directory results synchronously from the handler.
type DirectoryCallback func(DirectoryResult)

// ListDirectoryCommand lists the country directory. With Localize set display
// names are resolved through the translator; otherwise DisplayName holds the key.
type ListDirectoryCommand struct {
	Locale         string            `json:"locale,omitempty"`
	Localize       bool              `json:"localize,omitempty"`
	ResultCallback DirectoryCallback `json:"-"`
}

// Type implements command.Message.
func (ListDirectoryCommand) Type() string { return listDirectoryMessageType }

// Validate ensures the locale is well-formed when supplied.
func (m ListDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Locale, factrules.Locale),
	)
}

// AuditCallback receives the audit report synchronously from the handler.
type AuditCallback func(audit.Report)

// AuditContentCommand audits the loaded content. FailOnError turns error
// findings into a failed execution.
type AuditContentCommand struct {
	FailOnError    bool          `json:"fail_on_error,omitempty"`
	ResultCallback AuditCallback `json:"-"`
}

// Type implements command.Message.
func (AuditContentCommand) Type() string { return auditContentMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (AuditContentCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	AuditEnabled func() bool
}

func (g FeatureGates) auditEnabled() bool {
	if g.AuditEnabled == nil {
		return true
	}
	return g.AuditEnabled()
}

func trimmedLocale(locale string) facts.Locale {
	return facts.Locale(strings.TrimSpace(locale))
}
