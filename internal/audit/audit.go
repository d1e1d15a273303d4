package audit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/internal/validation"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// ErrContentAudit is returned by Report.Err when at least one error finding exists.
var ErrContentAudit = errors.New("audit: content audit failed")

// Severity ranks a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Check names the rule that produced a finding.
type Check string

const (
	CheckReservedKey        Check = "reserved_key"
	CheckCollision          Check = "collision"
	CheckCountryCode        Check = "country_code"
	CheckEmptyFacts         Check = "empty_facts"
	CheckDirectoryCoverage  Check = "directory_coverage"
	CheckDuplicateDirectory Check = "duplicate_directory"
	CheckMirrorParity       Check = "mirror_parity"
	CheckDefaultShadow      Check = "default_shadow"
)

// Finding is a single audit observation.
type Finding struct {
	Severity Severity          `json:"severity"`
	Check    Check             `json:"check"`
	Key      string            `json:"key"`
	Code     facts.CountryCode `json:"code,omitempty"`
	Message  string            `json:"message"`
}

// Report collects the findings of one audit run in a stable order.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Errors returns the error findings.
func (r Report) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning findings.
func (r Report) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	for _, finding := range r.Findings {
		if finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByCheck returns the findings produced by check.
func (r Report) ByCheck(check Check) []Finding {
	out := []Finding{}
	for _, finding := range r.Findings {
		if finding.Check == check {
			out = append(out, finding)
		}
	}
	return out
}

// Err returns nil for a clean report, otherwise an error wrapping ErrContentAudit.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("%w: %d error(s), first %s %s: %s", ErrContentAudit, len(errs), first.Key, first.Check, first.Message)
}

// Log writes every finding at its severity followed by a summary entry.
func (r Report) Log(logger interfaces.Logger) {
	if logger == nil {
		return
	}
	for _, finding := range r.Findings {
		entry := logging.WithFields(logger, map[string]any{
			"check": string(finding.Check),
			"key":   finding.Key,
		})
		args := []any{"message", finding.Message}
		if finding.Code != "" {
			args = append(args, "code", string(finding.Code))
		}
		if finding.Severity == SeverityError {
			entry.Error("audit.finding", args...)
			continue
		}
		entry.Warn("audit.finding", args...)
	}
	logger.Info("audit.completed",
		"errors", len(r.Errors()),
		"warnings", len(r.Warnings()),
	)
}

func (r Report) filter(severity Severity) []Finding {
	out := []Finding{}
	for _, finding := range r.Findings {
		if finding.Severity == severity {
			out = append(out, finding)
		}
	}
	return out
}

// Inspect runs every check against bundle. It never modifies the bundle.
func Inspect(bundle *dataset.Bundle) Report {
	report := Report{Findings: []Finding{}}
	if bundle == nil {
		return report
	}

	tables := make(map[dataset.Key]*facts.Table, len(bundle.Sources))
	for _, key := range bundle.Keys() {
		source := bundle.Sources[key]
		table := source.Aggregate()
		tables[key] = table

		report.add(checkSourceCodes(key, source)...)
		report.add(checkReservedKeys(key, table)...)
		report.add(checkCollisions(key, source)...)
	}

	locales := make([]facts.Locale, 0, len(bundle.Directories))
	for locale := range bundle.Directories {
		locales = append(locales, locale)
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i] < locales[j] })
	for _, locale := range locales {
		report.add(checkDirectory(bundle, locale, tables)...)
	}

	for _, group := range bundle.Manifest.Mirrors {
		for _, category := range bundle.Manifest.Categories {
			report.add(checkMirror(group, category, tables)...)
		}
	}
	return report
}

func (r *Report) add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

func checkReservedKeys(key dataset.Key, table *facts.Table) []Finding {
	out := []Finding{}
	for _, code := range []facts.CountryCode{facts.DefaultCode, facts.WorldCode} {
		list, ok := table.Get(code)
		switch {
		case !ok:
			out = append(out, Finding{
				Severity: SeverityError,
				Check:    CheckReservedKey,
				Key:      key.String(),
				Code:     code,
				Message:  "reserved key is missing",
			})
		case len(list) == 0:
			out = append(out, Finding{
				Severity: SeverityError,
				Check:    CheckReservedKey,
				Key:      key.String(),
				Code:     code,
				Message:  "reserved key has no facts",
			})
		}
	}
	return out
}

func checkCollisions(key dataset.Key, source dataset.Source) []Finding {
	collisions := facts.Collisions(source.Regions, source.Defaults)
	out := make([]Finding, 0, len(collisions))
	for _, collision := range collisions {
		out = append(out, Finding{
			Severity: SeverityWarning,
			Check:    CheckCollision,
			Key:      key.String(),
			Code:     collision.Code,
			Message: fmt.Sprintf("defined in %s; %s wins",
				strings.Join(collision.Regions, ", "), collision.Winner),
		})
	}
	return out
}

func checkSourceCodes(key dataset.Key, source dataset.Source) []Finding {
	out := []Finding{}
	tables := append(append([]facts.RegionalTable{}, source.Regions...), source.Defaults)
	for _, table := range tables {
		for _, code := range sortedCodes(table.Facts) {
			list := table.Facts[code]
			if table.Region == dataset.DefaultRegion && !code.IsReserved() {
				out = append(out, Finding{
					Severity: SeverityError,
					Check:    CheckDefaultShadow,
					Key:      key.String(),
					Code:     code,
					Message:  "default table defines a country code and shadows its regional list",
				})
			}
			if !code.IsReserved() && !validation.IsCountryCode(string(code)) {
				out = append(out, Finding{
					Severity: SeverityError,
					Check:    CheckCountryCode,
					Key:      key.String(),
					Code:     code,
					Message:  fmt.Sprintf("%s: not an ISO 3166-1 alpha-2 code", table.Region),
				})
			}
			if len(list) == 0 {
				out = append(out, Finding{
					Severity: SeverityError,
					Check:    CheckEmptyFacts,
					Key:      key.String(),
					Code:     code,
					Message:  fmt.Sprintf("%s: fact list is empty", table.Region),
				})
				continue
			}
			for i, fact := range list {
				if strings.TrimSpace(fact) == "" {
					out = append(out, Finding{
						Severity: SeverityWarning,
						Check:    CheckEmptyFacts,
						Key:      key.String(),
						Code:     code,
						Message:  fmt.Sprintf("%s: fact %d is blank", table.Region, i),
					})
				}
			}
		}
	}
	return out
}

func checkDirectory(bundle *dataset.Bundle, locale facts.Locale, tables map[dataset.Key]*facts.Table) []Finding {
	out := []Finding{}
	key := "directory/" + string(locale)
	entries := bundle.Directory(locale)

	seen := map[facts.CountryCode]bool{}
	for _, entry := range entries {
		if seen[entry.Code] {
			out = append(out, Finding{
				Severity: SeverityError,
				Check:    CheckDuplicateDirectory,
				Key:      key,
				Code:     entry.Code,
				Message:  "code listed more than once",
			})
			continue
		}
		seen[entry.Code] = true
		if !validation.IsCountryCode(string(entry.Code)) {
			out = append(out, Finding{
				Severity: SeverityError,
				Check:    CheckCountryCode,
				Key:      key,
				Code:     entry.Code,
				Message:  "not an ISO 3166-1 alpha-2 code",
			})
		}
	}

	for _, category := range bundle.Manifest.Categories {
		table, ok := tables[dataset.Key{Locale: locale, Category: category}]
		if !ok {
			continue
		}
		for _, entry := range entries {
			if table.Has(entry.Code) {
				continue
			}
			out = append(out, Finding{
				Severity: SeverityError,
				Check:    CheckDirectoryCoverage,
				Key:      key,
				Code:     entry.Code,
				Message:  fmt.Sprintf("no entry in %s table", category),
			})
		}
	}
	return out
}

func checkMirror(group []facts.Locale, category facts.Category, tables map[dataset.Key]*facts.Table) []Finding {
	out := []Finding{}
	if len(group) < 2 {
		return out
	}
	reference := dataset.Key{Locale: group[0], Category: category}
	referenceTable, ok := tables[reference]
	if !ok {
		return out
	}
	for _, locale := range group[1:] {
		key := dataset.Key{Locale: locale, Category: category}
		table, ok := tables[key]
		if !ok {
			continue
		}
		for _, code := range referenceTable.Codes() {
			if !table.Has(code) {
				out = append(out, Finding{
					Severity: SeverityError,
					Check:    CheckMirrorParity,
					Key:      key.String(),
					Code:     code,
					Message:  fmt.Sprintf("present in %s but missing here", reference),
				})
			}
		}
		for _, code := range table.Codes() {
			if !referenceTable.Has(code) {
				out = append(out, Finding{
					Severity: SeverityError,
					Check:    CheckMirrorParity,
					Key:      key.String(),
					Code:     code,
					Message:  fmt.Sprintf("missing from %s", reference),
				})
			}
		}
	}
	return out
}

func sortedCodes(entries map[facts.CountryCode]facts.FactList) []facts.CountryCode {
	out := make([]facts.CountryCode, 0, len(entries))
	for code := range entries {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
