package factscmd

import (
	"context"
	"errors"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-funfacts/internal/audit"
	"github.com/goliatone/go-funfacts/internal/catalog"
	"github.com/goliatone/go-funfacts/internal/commands"
	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// ErrAuditDisabled is returned when the audit command runs with the audit gate closed.
var ErrAuditDisabled = errors.New("factscmd: content audit is disabled")

// ErrServiceUnavailable is returned when a handler was built without its service.
var ErrServiceUnavailable = errors.New("factscmd: service unavailable")

// Auditor runs the content audit over the loaded bundle.
type Auditor interface {
	Audit(ctx context.Context) (audit.Report, error)
}

// LookupFactsHandler resolves facts for a country through the catalog.
type LookupFactsHandler struct {
	inner *commands.Handler[LookupFactsCommand]
}

// NewLookupFactsHandler constructs a lookup handler bound to service.
func NewLookupFactsHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[LookupFactsCommand]) *LookupFactsHandler {
	exec := func(ctx context.Context, msg LookupFactsCommand) error {
		if service == nil {
			return ErrServiceUnavailable
		}
		locale := trimmedLocale(msg.Locale)
		if locale == "" {
			locale = service.DefaultLocale()
		}
		category := facts.Category(strings.TrimSpace(msg.Category))
		code := facts.CountryCode(strings.TrimSpace(msg.Country))

		result := LookupResult{
			Locale:    locale,
			Category:  category,
			Requested: code,
		}
		if msg.Fallback {
			res, err := service.Resolve(locale, category, code)
			if err != nil {
				return err
			}
			result.Code = res.Code
			result.Facts = res.Facts
			result.Fallback = res.Fallback
			result.Found = res.Found()
		} else {
			list, ok, err := service.Lookup(locale, category, code)
			if err != nil {
				return err
			}
			if ok {
				result.Code = code
				result.Facts = list
				result.Found = true
			}
		}
		invokeCallback(msg.ResultCallback, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[LookupFactsCommand]{
		commands.WithLogger[LookupFactsCommand](logger),
		commands.WithOperation[LookupFactsCommand]("facts.lookup"),
		commands.WithMessageFields(func(msg LookupFactsCommand) map[string]any {
			fields := map[string]any{
				"category": msg.Category,
				"country":  msg.Country,
			}
			if msg.Locale != "" {
				fields["locale"] = msg.Locale
			}
			if msg.Fallback {
				fields["fallback"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LookupFactsCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LookupFactsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[LookupFactsCommand].
func (h *LookupFactsHandler) Execute(ctx context.Context, msg LookupFactsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the lookup handler to CLI integrations.
func (h *LookupFactsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for fact lookups.
func (h *LookupFactsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"facts", "lookup"},
		Group:       "facts",
		Description: "Print the facts stored for a country, optionally falling back to DEFAULT",
	}
}

// ListDirectoryHandler lists the country directory for a locale.
type ListDirectoryHandler struct {
	inner *commands.Handler[ListDirectoryCommand]
}

// NewListDirectoryHandler constructs a directory handler. A nil translator
// leaves display names as their keys.
func NewListDirectoryHandler(service catalog.Service, translator interfaces.Translator, logger interfaces.Logger, opts ...commands.HandlerOption[ListDirectoryCommand]) *ListDirectoryHandler {
	if translator == nil {
		translator = catalog.NoOpTranslator{}
	}
	exec := func(ctx context.Context, msg ListDirectoryCommand) error {
		if service == nil {
			return ErrServiceUnavailable
		}
		locale := trimmedLocale(msg.Locale)
		if locale == "" {
			locale = service.DefaultLocale()
		}
		entries, err := service.Directory(locale)
		if err != nil {
			return err
		}
		var names interfaces.Translator = catalog.NoOpTranslator{}
		if msg.Localize {
			names = translator
		}
		invokeCallback(msg.ResultCallback, DirectoryResult{
			Locale:  locale,
			Entries: catalog.Localize(entries, locale, names),
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListDirectoryCommand]{
		commands.WithLogger[ListDirectoryCommand](logger),
		commands.WithOperation[ListDirectoryCommand]("directory.list"),
		commands.WithMessageFields(func(msg ListDirectoryCommand) map[string]any {
			fields := map[string]any{}
			if msg.Locale != "" {
				fields["locale"] = msg.Locale
			}
			if msg.Localize {
				fields["localize"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ListDirectoryCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ListDirectoryCommand].
func (h *ListDirectoryHandler) Execute(ctx context.Context, msg ListDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the directory handler to CLI integrations.
func (h *ListDirectoryHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for directory listings.
func (h *ListDirectoryHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"directory", "list"},
		Group:       "directory",
		Description: "List countries with dedicated facts",
	}
}

type auditHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// AuditHandlerOption customises the audit handler.
type AuditHandlerOption func(*auditHandlerConfig)

// AuditWithCronExpression overrides the cron expression for the audit handler.
func AuditWithCronExpression(expression string) AuditHandlerOption {
	return func(cfg *auditHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// AuditWithTimeout overrides the default execution timeout.
func AuditWithTimeout(timeout time.Duration) AuditHandlerOption {
	return func(cfg *auditHandlerConfig) {
		cfg.timeout = timeout
	}
}

// AuditContentHandler runs the content audit and reports its findings.
type AuditContentHandler struct {
	auditor    Auditor
	gates      FeatureGates
	logger     interfaces.Logger
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// NewAuditContentHandler constructs a handler delegating to auditor.
func NewAuditContentHandler(auditor Auditor, logger interfaces.Logger, gates FeatureGates, opts ...AuditHandlerOption) *AuditContentHandler {
	cfg := auditHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &AuditContentHandler{
		auditor:    auditor,
		gates:      gates,
		logger:     commands.EnsureLogger(logger),
		cronConfig: cfg.cronConfig,
		timeout:    cfg.timeout,
	}
}

// Execute satisfies command.Commander[AuditContentCommand].
func (h *AuditContentHandler) Execute(ctx context.Context, msg AuditContentCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}
	if h.auditor == nil {
		return commands.WrapExecuteError(ErrServiceUnavailable)
	}
	if !h.gates.auditEnabled() {
		return commands.WrapExecuteError(ErrAuditDisabled)
	}

	report, err := h.auditor.Audit(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return commands.WrapContextError(ctxErr)
		}
		return commands.WrapExecuteError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "content.audit",
	})
	report.Log(logger)
	if msg.ResultCallback != nil {
		msg.ResultCallback(report)
	}

	if msg.FailOnError {
		if err := report.Err(); err != nil {
			return commands.WrapExecuteError(err)
		}
	}
	return nil
}

// CronHandler satisfies command.CronCommand by binding audit execution to a cron runner.
func (h *AuditContentHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), AuditContentCommand{})
	}
}

// CronOptions satisfies command.CronCommand by returning the configured cron metadata.
func (h *AuditContentHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the audit handler to CLI integrations.
func (h *AuditContentHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for content audits.
func (h *AuditContentHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"content", "audit"},
		Group:       "content",
		Description: "Audit fact tables and directories for consistency",
	}
}

func invokeCallback[R any](cb func(R), result R) {
	if cb == nil {
		return
	}
	cb(result)
}
