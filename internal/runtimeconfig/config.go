package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-funfacts/internal/facts"
	factrules "github.com/goliatone/go-funfacts/internal/validation"
)

var ErrDefaultLocaleRequired = errors.New("funfacts config: default locale is required when locales are restricted")
var ErrDefaultLocaleNotSelected = errors.New("funfacts config: default locale must be one of the selected locales")
var ErrAuditFailRequiresEnabled = errors.New("funfacts config: audit fail-on-error requires the audit to be enabled")
var ErrLoggingProviderRequired = errors.New("funfacts config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("funfacts config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("funfacts config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("funfacts config: logging format is invalid")

// Logging providers understood by the container.
const (
	LoggingProviderGoLogger = "gologger"
	LoggingProviderNoop     = "noop"
)

// Config aggregates selection, audit and logging options for the funfacts module.
type Config struct {
	// DefaultLocale answers lookups made with an empty locale. Empty picks the
	// first selected locale.
	DefaultLocale string
	// Locales and Categories restrict what is loaded. Empty loads everything the
	// manifest declares.
	Locales    []string
	Categories []string
	Audit      AuditConfig
	Features   Features
	Logging    LoggingConfig
}

// AuditConfig controls the content audit run during initialisation.
type AuditConfig struct {
	Enabled     bool
	FailOnError bool
}

// Features toggles optional module functionality.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig loads every locale and category, audits without failing and
// keeps logging off.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Audit: AuditConfig{
			Enabled: true,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: LoggingProviderGoLogger,
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks field formats first, then cross-field consistency.
func (cfg Config) Validate() error {
	if err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.DefaultLocale, factrules.Locale),
		validation.Field(&cfg.Locales, validation.Each(validation.Required, factrules.Locale)),
		validation.Field(&cfg.Categories, validation.Each(validation.Required, factrules.Category)),
	); err != nil {
		return err
	}

	if len(cfg.Locales) > 0 {
		locale := strings.TrimSpace(cfg.DefaultLocale)
		if locale == "" {
			return ErrDefaultLocaleRequired
		}
		if !containsString(cfg.Locales, locale) {
			return fmt.Errorf("%w: %s", ErrDefaultLocaleNotSelected, locale)
		}
	}
	if cfg.Audit.FailOnError && !cfg.Audit.Enabled {
		return ErrAuditFailRequiresEnabled
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == LoggingProviderGoLogger {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// SelectedLocales converts Locales to domain values.
func (cfg Config) SelectedLocales() []facts.Locale {
	if len(cfg.Locales) == 0 {
		return nil
	}
	out := make([]facts.Locale, 0, len(cfg.Locales))
	for _, locale := range cfg.Locales {
		out = append(out, facts.Locale(strings.TrimSpace(locale)))
	}
	return out
}

// SelectedCategories converts Categories to domain values.
func (cfg Config) SelectedCategories() []facts.Category {
	if len(cfg.Categories) == 0 {
		return nil
	}
	out := make([]facts.Category, 0, len(cfg.Categories))
	for _, category := range cfg.Categories {
		out = append(out, facts.Category(strings.TrimSpace(category)))
	}
	return out
}

// NormalizedLoggingProvider returns the lowercase provider name.
func (cfg Config) NormalizedLoggingProvider() string {
	return normalizeProvider(cfg.Logging.Provider)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case LoggingProviderGoLogger, LoggingProviderNoop:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == target {
			return true
		}
	}
	return false
}
