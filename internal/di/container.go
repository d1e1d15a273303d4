package di

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-funfacts/internal/audit"
	"github.com/goliatone/go-funfacts/internal/catalog"
	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/internal/logging/gologger"
	"github.com/goliatone/go-funfacts/internal/runtimeconfig"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// Container wires module dependencies. Everything is built once by NewContainer.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	translator     interfaces.Translator
	contentFS      fs.FS

	bundle  *dataset.Bundle
	catalog *catalog.Catalog
	report  audit.Report
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithTranslator sets the translator used for directory display names.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		if translator != nil {
			c.translator = translator
		}
	}
}

// WithContentFS replaces the embedded content tree.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// NewContainer validates cfg, loads and audits the content, and builds the catalog.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:     cfg,
		translator: catalog.NoOpTranslator{},
		contentFS:  dataset.Embedded(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}

	bundle, err := dataset.NewLoader(
		dataset.WithFS(c.contentFS),
		dataset.WithLogger(logging.DatasetLogger(c.loggerProvider)),
	).Load(context.Background())
	if err != nil {
		return nil, err
	}
	c.bundle = bundle

	if cfg.Audit.Enabled {
		c.report = audit.Inspect(bundle)
		c.report.Log(logging.AuditLogger(c.loggerProvider))
		if cfg.Audit.FailOnError {
			if err := c.report.Err(); err != nil {
				return nil, err
			}
		}
	}

	built, err := catalog.Build(bundle, catalog.Options{
		DefaultLocale: facts.Locale(cfg.DefaultLocale),
		Locales:       cfg.SelectedLocales(),
		Categories:    cfg.SelectedCategories(),
		Logger:        logging.CatalogLogger(c.loggerProvider),
	})
	if err != nil {
		return nil, err
	}
	c.catalog = built
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}
	switch c.Config.NormalizedLoggingProvider() {
	case runtimeconfig.LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

// LoggerProvider exposes the configured logger provider. It is nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Translator exposes the translator used for directory display names.
func (c *Container) Translator() interfaces.Translator {
	return c.translator
}

// Bundle exposes the decoded content tree.
func (c *Container) Bundle() *dataset.Bundle {
	return c.bundle
}

// Catalog returns the lookup service.
func (c *Container) Catalog() catalog.Service {
	return c.catalog
}

// AuditReport returns the report produced during initialisation. It is empty
// when the audit is disabled.
func (c *Container) AuditReport() audit.Report {
	return c.report
}

// Audit re-runs the content audit over the loaded bundle.
func (c *Container) Audit(ctx context.Context) (audit.Report, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return audit.Report{}, err
		}
	}
	return audit.Inspect(c.bundle), nil
}
