package i18n

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestServiceTranslateWithFallback(t *testing.T) {
	svc, fixture := mustLoadFixtureService(t)

	translator := svc.Translator()

	t.Run("falls back to regional parent", func(t *testing.T) {
		got, err := translator.Translate("es-mx", "landing.greeting", "Ada")
		if err != nil {
			t.Fatalf("translate: %v", err)
		}
		if got != "Hola, Ada!" {
			t.Fatalf("expected Spanish greeting, got %q", got)
		}
	})

	t.Run("falls back to default locale", func(t *testing.T) {
		got, err := translator.Translate("es-mx", "landing.tagline")
		if err != nil {
			t.Fatalf("translate: %v", err)
		}
		if got != "Facts for every country" {
			t.Fatalf("expected English fallback, got %q", got)
		}
	})

	t.Run("defaults locale when empty", func(t *testing.T) {
		got, err := translator.Translate("", "landing.tagline")
		if err != nil {
			t.Fatalf("translate: %v", err)
		}
		if got != "Facts for every country" {
			t.Fatalf("expected default locale, got %q", got)
		}
	})

	t.Run("reports missing keys", func(t *testing.T) {
		_, err := translator.Translate("es", "unknown.key")
		if !errors.Is(err, ErrTranslationMissing) {
			t.Fatalf("expected ErrTranslationMissing, got %v", err)
		}
	})

	if svc.DefaultLocale() != fixture.Config.DefaultLocale {
		t.Fatalf("expected default locale %q got %q", fixture.Config.DefaultLocale, svc.DefaultLocale())
	}
}

func TestDefaultServiceTranslatesCountryNames(t *testing.T) {
	svc, err := NewDefaultService()
	if err != nil {
		t.Fatalf("default service: %v", err)
	}

	cases := map[string]string{
		"en": "Germany",
		"de": "Deutschland",
		"fr": "Germany",
	}
	for locale, want := range cases {
		got, err := svc.Translator().Translate(locale, "COUNTRIES.GERMANY")
		if err != nil {
			t.Fatalf("%s: %v", locale, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", locale, want, got)
		}
	}
}

func TestNewInMemoryServiceRequiresDefaultTranslations(t *testing.T) {
	_, err := NewInMemoryService(Config{DefaultLocale: "it"}, map[string]map[string]string{"en": {}})
	if err == nil {
		t.Fatal("expected error for default locale without translations")
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(filepath.Join("testdata", "translations_fixture.json")).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func mustLoadFixtureService(t *testing.T) (Service, *Fixture) {
	t.Helper()

	path := filepath.Join("testdata", "translations_fixture.json")
	loader := NewLoader(path)

	fixture, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	service, err := NewInMemoryService(fixture.Config, fixture.Translations)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return service, fixture
}
