package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

const (
	rootModule     = "funfacts"
	catalogModule  = "funfacts.catalog"
	datasetModule  = "funfacts.dataset"
	auditModule    = "funfacts.audit"
	commandsModule = "funfacts.commands"
)

const (
	fieldLocale   = "locale"
	fieldCategory = "category"
	fieldCountry  = "country"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for catalog construction and lookups.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// DatasetLogger returns the logger namespace reserved for content loading.
func DatasetLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, datasetModule)
}

// AuditLogger returns the logger namespace reserved for content audits.
func AuditLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, auditModule)
}

// CommandLogger returns a logger for command handlers, tagged with the command module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := ModuleLogger(provider, commandsModule+"."+name)
	return WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// WithFields attaches structured fields when the logger supports the optional
// FieldsLogger extension. Nil or empty maps are ignored.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithLookupContext enriches logger with locale, category and country fields.
// Empty values are skipped.
func WithLookupContext(logger interfaces.Logger, locale, category, country string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldCategory] = trimmed
	}
	if trimmed := strings.TrimSpace(country); trimmed != "" {
		fields[fieldCountry] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
