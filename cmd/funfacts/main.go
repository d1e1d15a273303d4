package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-funfacts/cmd/funfacts/internal/bootstrap"
	"github.com/goliatone/go-funfacts/internal/audit"
	factscmd "github.com/goliatone/go-funfacts/internal/commands/facts"
	"github.com/goliatone/go-funfacts/internal/facts"
)

type lookupHandler interface {
	Execute(context.Context, factscmd.LookupFactsCommand) error
}

type directoryHandler interface {
	Execute(context.Context, factscmd.ListDirectoryCommand) error
}

type auditHandler interface {
	Execute(context.Context, factscmd.AuditContentCommand) error
}

type handlerSet struct {
	lookup    lookupHandler
	directory directoryHandler
	audit     auditHandler
}

type moduleOptions struct {
	DefaultLocale string
	Locales       []string
	Categories    []string
	FailOnAudit   bool
	Translations  string
	LogLevel      string
	LogFormat     string
}

type moduleResources struct {
	handlers handlerSet
}

var moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
	module, err := bootstrap.BuildModule(bootstrap.Options{
		DefaultLocale:    opts.DefaultLocale,
		Locales:          opts.Locales,
		Categories:       opts.Categories,
		FailOnAudit:      opts.FailOnAudit,
		TranslationsPath: opts.Translations,
		LogLevel:         opts.LogLevel,
		LogFormat:        opts.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	resources := &moduleResources{}
	if module.Lookup != nil {
		resources.handlers.lookup = module.Lookup
	}
	if module.Directory != nil {
		resources.handlers.directory = module.Directory
	}
	if module.Audit != nil {
		resources.handlers.audit = module.Audit
	}
	return resources, nil
}

var stdout io.Writer = os.Stdout

const usage = "usage: funfacts <lookup|world|directory|audit> [flags]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("funfacts: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand; " + usage)
	}
	switch args[0] {
	case "lookup":
		return runLookup(args[1:])
	case "world":
		return runWorld(args[1:])
	case "directory":
		return runDirectory(args[1:])
	case "audit":
		return runAudit(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q; %s", args[0], usage)
	}
}

type commonFlags struct {
	defaultLocale *string
	locales       *string
	categories    *string
	failOnAudit   *bool
	translations  *string
	logLevel      *string
	logFormat     *string
	asJSON        *bool
}

func newFlagSet(name string) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet("funfacts-"+name, flag.ContinueOnError)
	common := commonFlags{
		defaultLocale: fs.String("default-locale", "", "Locale used when --locale is omitted (defaults to the first loaded locale)"),
		locales:       fs.String("locales", "", "Comma separated locales to load (defaults to every locale)"),
		categories:    fs.String("categories", "", "Comma separated categories to load (defaults to every category)"),
		failOnAudit:   fs.Bool("fail-on-audit", false, "Refuse to start when the startup content audit reports errors"),
		translations:  fs.String("translations", "", "Country name translation fixture (JSON) replacing the embedded names"),
		logLevel:      fs.String("log-level", "", "Enable structured logging at the given level (trace, debug, info, warn, error)"),
		logFormat:     fs.String("log-format", "console", "Structured log format (json, console, pretty)"),
		asJSON:        fs.Bool("json", false, "Print results as JSON"),
	}
	return fs, common
}

func (c commonFlags) options() moduleOptions {
	return moduleOptions{
		DefaultLocale: strings.TrimSpace(*c.defaultLocale),
		Locales:       bootstrap.SplitList(*c.locales),
		Categories:    bootstrap.SplitList(*c.categories),
		FailOnAudit:   *c.failOnAudit,
		Translations:  strings.TrimSpace(*c.translations),
		LogLevel:      *c.logLevel,
		LogFormat:     *c.logFormat,
	}
}

func runLookup(args []string) error {
	fs, common := newFlagSet("lookup")
	locale := fs.String("locale", "", "Locale of the fact text (defaults to the module default locale)")
	category := fs.String("category", "", "Fact category (electricity, water)")
	country := fs.String("country", "", "ISO 3166-1 alpha-2 country code")
	strict := fs.Bool("strict", false, "Do not fall back to DEFAULT facts for unknown countries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return executeLookup(common, factscmd.LookupFactsCommand{
		Locale:   *locale,
		Category: *category,
		Country:  strings.ToUpper(strings.TrimSpace(*country)),
		Fallback: !*strict,
	}, "lookup")
}

func runWorld(args []string) error {
	fs, common := newFlagSet("world")
	locale := fs.String("locale", "", "Locale of the fact text (defaults to the module default locale)")
	category := fs.String("category", "", "Fact category (electricity, water)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return executeLookup(common, factscmd.LookupFactsCommand{
		Locale:   *locale,
		Category: *category,
		Country:  string(facts.WorldCode),
	}, "world")
}

func executeLookup(common commonFlags, cmd factscmd.LookupFactsCommand, operation string) error {
	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.lookup == nil {
		return errors.New("lookup handler not configured")
	}

	var result factscmd.LookupResult
	cmd.ResultCallback = func(r factscmd.LookupResult) {
		result = r
	}
	if err := resources.handlers.lookup.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute %s command: %w", operation, err)
	}

	log.Printf("module=funfacts operation=%s locale=%s category=%s requested=%s resolved=%s fallback=%t facts=%d",
		operation, result.Locale, result.Category, result.Requested, result.Code, result.Fallback, len(result.Facts))

	if *common.asJSON {
		if err := writeJSON(result); err != nil {
			return err
		}
	} else {
		for i, fact := range result.Facts {
			fmt.Fprintf(stdout, "%d. %s\n", i+1, fact)
		}
	}
	if !result.Found {
		return fmt.Errorf("no facts for %s", cmd.Country)
	}
	return nil
}

func runDirectory(args []string) error {
	fs, common := newFlagSet("directory")
	locale := fs.String("locale", "", "Directory locale (defaults to the module default locale)")
	localize := fs.Bool("localize", false, "Resolve display names through the configured translator")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.directory == nil {
		return errors.New("directory handler not configured")
	}

	var result factscmd.DirectoryResult
	cmd := factscmd.ListDirectoryCommand{
		Locale:   *locale,
		Localize: *localize,
		ResultCallback: func(r factscmd.DirectoryResult) {
			result = r
		},
	}
	if err := resources.handlers.directory.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute directory command: %w", err)
	}

	log.Printf("module=funfacts operation=directory locale=%s entries=%d", result.Locale, len(result.Entries))

	if *common.asJSON {
		return writeJSON(result)
	}
	for _, entry := range result.Entries {
		fmt.Fprintf(stdout, "%s\t%s\n", entry.Code, entry.DisplayName)
	}
	return nil
}

func runAudit(args []string) error {
	fs, common := newFlagSet("audit")
	failOnError := fs.Bool("fail-on-error", false, "Exit with an error when the audit reports error findings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.audit == nil {
		return errors.New("audit handler not configured")
	}

	var report audit.Report
	cmd := factscmd.AuditContentCommand{
		FailOnError: *failOnError,
		ResultCallback: func(r audit.Report) {
			report = r
		},
	}
	execErr := resources.handlers.audit.Execute(context.Background(), cmd)

	log.Printf("module=funfacts operation=audit errors=%d warnings=%d", len(report.Errors()), len(report.Warnings()))

	if *common.asJSON {
		if err := writeJSON(report); err != nil {
			return err
		}
	} else {
		for _, finding := range report.Findings {
			code := string(finding.Code)
			if code == "" {
				code = "-"
			}
			fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\t%s\n", finding.Severity, finding.Check, finding.Key, code, finding.Message)
		}
	}
	if execErr != nil {
		return fmt.Errorf("execute audit command: %w", execErr)
	}
	return nil
}

func writeJSON(value any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
