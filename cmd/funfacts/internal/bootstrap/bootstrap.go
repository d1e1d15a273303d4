package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-funfacts"
	"github.com/goliatone/go-funfacts/commands"
	factscmd "github.com/goliatone/go-funfacts/internal/commands/facts"
	"github.com/goliatone/go-funfacts/internal/di"
	"github.com/goliatone/go-funfacts/internal/i18n"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	DefaultLocale  string
	Locales        []string
	Categories     []string
	FailOnAudit    bool
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
	Translator     interfaces.Translator
	// TranslationsPath loads country names from a fixture file instead of the
	// embedded set. Ignored when Translator is provided.
	TranslationsPath string
}

// Module wraps the funfacts module and the command handlers built for it.
type Module struct {
	Module    *funfacts.Module
	Lookup    *factscmd.LookupFactsHandler
	Directory *factscmd.ListDirectoryHandler
	Audit     *factscmd.AuditContentHandler
}

// BuildModule constructs a funfacts module and its command handlers.
func BuildModule(opts Options) (*Module, error) {
	cfg := funfacts.DefaultConfig()
	if locale := strings.TrimSpace(opts.DefaultLocale); locale != "" {
		cfg.DefaultLocale = locale
	}
	if len(opts.Locales) > 0 {
		cfg.Locales = cloneStrings(opts.Locales)
		if strings.TrimSpace(opts.DefaultLocale) == "" {
			cfg.DefaultLocale = cfg.Locales[0]
		}
	}
	if len(opts.Categories) > 0 {
		cfg.Categories = cloneStrings(opts.Categories)
	}
	cfg.Audit.Enabled = true
	cfg.Audit.FailOnError = opts.FailOnAudit

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Format = format
		}
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	translator, err := resolveTranslator(opts)
	if err != nil {
		return nil, err
	}
	diOpts = append(diOpts, di.WithTranslator(translator))

	module, err := funfacts.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise funfacts module: %w", err)
	}

	result, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{})
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	resources := &Module{Module: module}
	for _, handler := range result.Handlers {
		switch h := handler.(type) {
		case *factscmd.LookupFactsHandler:
			resources.Lookup = h
		case *factscmd.ListDirectoryHandler:
			resources.Directory = h
		case *factscmd.AuditContentHandler:
			resources.Audit = h
		}
	}
	return resources, nil
}

func resolveTranslator(opts Options) (interfaces.Translator, error) {
	if opts.Translator != nil {
		return opts.Translator, nil
	}
	var (
		service i18n.Service
		err     error
	)
	if path := strings.TrimSpace(opts.TranslationsPath); path != "" {
		var fixture *i18n.Fixture
		fixture, err = i18n.NewLoader(path).Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load country names: %w", err)
		}
		service, err = i18n.NewInMemoryService(fixture.Config, fixture.Translations)
	} else {
		service, err = i18n.NewDefaultService()
	}
	if err != nil {
		return nil, fmt.Errorf("load country names: %w", err)
	}
	return service.Translator(), nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
