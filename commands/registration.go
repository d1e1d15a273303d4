package commands

import (
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	factscmd "github.com/goliatone/go-funfacts/internal/commands/facts"
	"github.com/goliatone/go-funfacts/internal/di"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// ErrUnsupportedHandler is returned by DispatcherAdapter for handlers it cannot subscribe.
var ErrUnsupportedHandler = errors.New("commands: unsupported handler type")

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// AuditCron overrides the default cron expression applied to the content audit handler.
	AuditCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe releases every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	r.Subscriptions = nil
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return logging.CommandLogger(provider, module)
	}

	if service := container.Catalog(); service != nil {
		factsLogger := loggerFor("facts")
		register(factscmd.NewLookupFactsHandler(service, factsLogger))
		register(factscmd.NewListDirectoryHandler(service, container.Translator(), factsLogger))
	}

	if cfg.Audit.Enabled {
		gates := factscmd.FeatureGates{
			AuditEnabled: func() bool { return cfg.Audit.Enabled },
		}
		auditOpts := []factscmd.AuditHandlerOption{}
		if expr := strings.TrimSpace(opts.AuditCron); expr != "" {
			auditOpts = append(auditOpts, factscmd.AuditWithCronExpression(expr))
		}
		register(factscmd.NewAuditContentHandler(container, loggerFor("audit"), gates, auditOpts...))
	}

	if len(result.Handlers) == 0 {
		return result, errors.Join(errs, errors.New("no command handlers registered; ensure the catalog is built"))
	}

	return result, errs
}

// DispatcherAdapter subscribes funfacts handlers to go-command's dispatcher.
type DispatcherAdapter struct {
	runnerOpts []runner.Option
}

// NewDispatcherAdapter constructs an adapter applying runnerOpts to every subscription.
func NewDispatcherAdapter(runnerOpts ...runner.Option) *DispatcherAdapter {
	return &DispatcherAdapter{runnerOpts: runnerOpts}
}

// RegisterCommand satisfies CommandDispatcher.
func (d *DispatcherAdapter) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[factscmd.LookupFactsCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	case command.Commander[factscmd.ListDirectoryCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	case command.Commander[factscmd.AuditContentCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHandler, handler)
	}
}
