package di_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-funfacts/internal/audit"
	"github.com/goliatone/go-funfacts/internal/catalog"
	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/di"
	"github.com/goliatone/go-funfacts/internal/runtimeconfig"
)

const brokenManifest = `{"locales": ["en"], "categories": ["water"], "regions": ["europe"]}`

func brokenContent() fstest.MapFS {
	return fstest.MapFS{
		"manifest.json":         {Data: []byte(brokenManifest)},
		"water/en/europe.json":  {Data: []byte(`{"region": "europe", "facts": {"DE": ["fact"]}}`)},
		"water/en/default.json": {Data: []byte(`{"region": "default", "facts": {"DEFAULT": ["generic"]}}`)},
	}
}

func TestNewContainerBuildsCatalog(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != nil {
		t.Fatalf("expected no logger provider when logging is disabled, got %T", container.LoggerProvider())
	}
	if _, ok := container.Translator().(catalog.NoOpTranslator); !ok {
		t.Fatalf("expected no-op translator, got %T", container.Translator())
	}
	if container.Bundle() == nil || container.Catalog() == nil {
		t.Fatal("expected bundle and catalog")
	}
	if container.AuditReport().HasErrors() {
		t.Fatalf("expected clean audit, got %+v", container.AuditReport().Errors())
	}
	if got := container.Catalog().DefaultLocale(); got != "en" {
		t.Fatalf("expected default locale en, got %s", got)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Audit.FailOnError = true

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrAuditFailRequiresEnabled) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestNewContainerRejectsUnloadedSelection(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []string{"fr"}
	cfg.DefaultLocale = "fr"

	if _, err := di.NewContainer(cfg); !errors.Is(err, catalog.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestNewContainerAuditFailOnError(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Audit.FailOnError = true

	_, err := di.NewContainer(cfg, di.WithContentFS(brokenContent()))
	if !errors.Is(err, audit.ErrContentAudit) {
		t.Fatalf("expected ErrContentAudit, got %v", err)
	}
}

func TestNewContainerLenientAuditKeepsFindings(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithContentFS(brokenContent()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	findings := container.AuditReport().ByCheck(audit.CheckReservedKey)
	if len(findings) != 1 || findings[0].Code != "WORLD" {
		t.Fatalf("expected missing WORLD finding, got %+v", findings)
	}

	list, ok, err := container.Catalog().Lookup("en", "water", "DE")
	if err != nil || !ok || list[0] != "fact" {
		t.Fatalf("expected lookup against injected content, got %v %v %v", list, ok, err)
	}
}

func TestNewContainerRejectsInvalidDocuments(t *testing.T) {
	content := brokenContent()
	content["water/en/europe.json"] = &fstest.MapFile{Data: []byte(`{"region": "europe", "facts": {"DE": []}}`)}

	if _, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithContentFS(content)); !errors.Is(err, dataset.ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestContainerAuditRerun(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	report, err := container.Audit(context.Background())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(report.Findings) != len(container.AuditReport().Findings) {
		t.Fatalf("expected rerun to match initial report")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := container.Audit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
