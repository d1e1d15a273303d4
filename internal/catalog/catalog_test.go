package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-funfacts/internal/dataset"
	"github.com/goliatone/go-funfacts/internal/facts"
)

func mustLoadBundle(t *testing.T) *dataset.Bundle {
	t.Helper()
	bundle, err := dataset.NewLoader().Load(context.Background())
	if err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}
	return bundle
}

func mustBuildCatalog(t *testing.T, opts Options) (*Catalog, *dataset.Bundle) {
	t.Helper()
	bundle := mustLoadBundle(t)
	cat, err := Build(bundle, opts)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat, bundle
}

func TestGermanElectricityScenario(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	list, ok, err := cat.Lookup("de", facts.CategoryElectricity, "DE")
	if err != nil {
		t.Fatalf("lookup DE: %v", err)
	}
	if !ok {
		t.Fatal("expected DE entry")
	}
	if len(list) != 12 {
		t.Fatalf("expected 12 German facts, got %d", len(list))
	}
	if !strings.HasPrefix(list[0], "Deutschland produzierte in den letzten Jahren") {
		t.Fatalf("unexpected first fact %q", list[0])
	}

	_, ok, err = cat.Lookup("de", facts.CategoryElectricity, "ZZ")
	if err != nil {
		t.Fatalf("lookup ZZ: %v", err)
	}
	if ok {
		t.Fatal("expected no entry for ZZ")
	}

	res, err := cat.Resolve("de", facts.CategoryElectricity, "ZZ")
	if err != nil {
		t.Fatalf("resolve ZZ: %v", err)
	}
	if !res.Fallback || res.Code != facts.DefaultCode {
		t.Fatalf("expected DEFAULT fallback, got %+v", res)
	}
	if len(res.Facts) != 12 {
		t.Fatalf("expected 12 default facts, got %d", len(res.Facts))
	}
	if !strings.HasPrefix(res.Facts[0], "LED-Lampen verbrauchen") {
		t.Fatalf("unexpected first default fact %q", res.Facts[0])
	}
}

func TestEnglishWaterScenario(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	list, ok, err := cat.Lookup("en", facts.CategoryWater, "US")
	if err != nil || !ok {
		t.Fatalf("expected US entry, ok=%v err=%v", ok, err)
	}
	want := "The average American uses 300 liters of water per day at home!"
	if list[0] != want {
		t.Fatalf("expected %q, got %q", want, list[0])
	}
}

func TestEveryTableCarriesReservedKeys(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	for _, category := range cat.Categories() {
		for _, locale := range cat.Locales() {
			table, err := cat.Table(locale, category)
			if err != nil {
				t.Fatalf("%s/%s: %v", category, locale, err)
			}
			for _, code := range []facts.CountryCode{facts.DefaultCode, facts.WorldCode} {
				list, ok := table.Get(code)
				if !ok || len(list) == 0 {
					t.Fatalf("%s/%s: expected non-empty %s", category, locale, code)
				}
			}
		}
	}
}

func TestMergePrecedenceOnAuthoredContent(t *testing.T) {
	cat, bundle := mustBuildCatalog(t, Options{})

	sawCollision := false
	for _, key := range bundle.Keys() {
		source := bundle.Sources[key]
		collisions := facts.Collisions(source.Regions, source.Defaults)
		table, err := cat.Table(key.Locale, key.Category)
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		for _, collision := range collisions {
			sawCollision = true
			var winner facts.FactList
			ordered := append(append([]facts.RegionalTable{}, source.Regions...), source.Defaults)
			for _, region := range ordered {
				if list, ok := region.Facts[collision.Code]; ok {
					winner = list
				}
			}
			got, _ := table.Get(collision.Code)
			if !got.Equal(winner) {
				t.Fatalf("%s %s: expected list from %s", key, collision.Code, collision.Winner)
			}
		}
	}
	if !sawCollision {
		t.Fatal("expected authored content to exercise at least one collision")
	}
}

func TestTurkeyResolvesToMiddleEastTable(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	list, ok, err := cat.Lookup("en", facts.CategoryElectricity, "TR")
	if err != nil || !ok {
		t.Fatalf("expected TR entry, ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(list[0], "Turkey generates a large share") {
		t.Fatalf("expected middle-east list to win, got %q", list[0])
	}
}

func TestMirrorLocalesShareCountryCodes(t *testing.T) {
	cat, bundle := mustBuildCatalog(t, Options{})

	for _, group := range bundle.Manifest.Mirrors {
		for _, category := range cat.Categories() {
			reference, err := cat.Codes(group[0], category)
			if err != nil {
				t.Fatalf("codes %s/%s: %v", category, group[0], err)
			}
			for _, locale := range group[1:] {
				codes, err := cat.Codes(locale, category)
				if err != nil {
					t.Fatalf("codes %s/%s: %v", category, locale, err)
				}
				if len(codes) != len(reference) {
					t.Fatalf("%s: %s has %d codes, %s has %d", category, group[0], len(reference), locale, len(codes))
				}
				for i := range codes {
					if codes[i] != reference[i] {
						t.Fatalf("%s: code mismatch %s vs %s", category, reference[i], codes[i])
					}
				}
			}
		}
	}
}

func TestDirectoryCodesExistInEveryTable(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	for _, locale := range cat.Locales() {
		entries, err := cat.Directory(locale)
		if err != nil {
			t.Fatalf("directory %s: %v", locale, err)
		}
		if len(entries) == 0 {
			t.Fatalf("expected directory entries for %s", locale)
		}
		for _, category := range cat.Categories() {
			table, _ := cat.Table(locale, category)
			for _, entry := range entries {
				if !table.Has(entry.Code) {
					t.Fatalf("%s/%s: directory code %s missing from table", category, locale, entry.Code)
				}
			}
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	bundle := mustLoadBundle(t)

	first, err := Build(bundle, Options{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := Build(bundle, Options{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	for _, category := range first.Categories() {
		for _, locale := range first.Locales() {
			a, _ := first.Table(locale, category)
			b, _ := second.Table(locale, category)
			if a == b {
				t.Fatalf("%s/%s: expected fresh tables", category, locale)
			}
			if !a.Equal(b) {
				t.Fatalf("%s/%s: expected value-equal tables", category, locale)
			}
		}
	}
}

func TestEmptyLocaleUsesDefaultLocale(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{DefaultLocale: "de"})

	list, ok, err := cat.Lookup("", facts.CategoryElectricity, "DE")
	if err != nil || !ok {
		t.Fatalf("expected default-locale lookup, ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(list[0], "Deutschland") {
		t.Fatalf("expected German text, got %q", list[0])
	}
}

func TestUnknownSelectionsAreNotFound(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{})

	_, err := cat.Table("fr", facts.CategoryWater)
	if !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}

	_, _, err = cat.Lookup("en", "gas", "DE")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	if _, err := cat.Directory("fr"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale for directory, got %v", err)
	}
}

func TestBuildSelectsSubset(t *testing.T) {
	cat, _ := mustBuildCatalog(t, Options{
		Locales:    []facts.Locale{"en"},
		Categories: []facts.Category{facts.CategoryWater},
	})

	if len(cat.Locales()) != 1 || cat.DefaultLocale() != "en" {
		t.Fatalf("unexpected locales %v default %s", cat.Locales(), cat.DefaultLocale())
	}
	if _, err := cat.Table("de", facts.CategoryWater); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected de to be unloaded, got %v", err)
	}
	if _, err := cat.Table("en", facts.CategoryElectricity); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected electricity to be unloaded, got %v", err)
	}
}

func TestBuildRejectsInvalidSelections(t *testing.T) {
	bundle := mustLoadBundle(t)

	if _, err := Build(bundle, Options{Locales: []facts.Locale{"fr"}}); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
	if _, err := Build(bundle, Options{Categories: []facts.Category{"gas"}}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	_, err := Build(bundle, Options{Locales: []facts.Locale{"en"}, DefaultLocale: "de"})
	if !errors.Is(err, ErrDefaultLocaleNotLoaded) {
		t.Fatalf("expected ErrDefaultLocaleNotLoaded, got %v", err)
	}
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if value, ok := m[key]; ok {
		return value, nil
	}
	return "", errors.New("missing")
}

func TestLocalizeFallsBackToKey(t *testing.T) {
	entries := []facts.DirectoryEntry{
		{Code: "DE", DisplayNameKey: "COUNTRIES.GERMANY"},
		{Code: "FR", DisplayNameKey: "COUNTRIES.FRANCE"},
	}

	localized := Localize(entries, "de", mapTranslator{"COUNTRIES.GERMANY": "Deutschland"})
	if localized[0].DisplayName != "Deutschland" {
		t.Fatalf("expected translated name, got %q", localized[0].DisplayName)
	}
	if localized[1].DisplayName != "COUNTRIES.FRANCE" {
		t.Fatalf("expected key fallback, got %q", localized[1].DisplayName)
	}

	plain := Localize(entries, "de", NoOpTranslator{})
	if plain[0].DisplayName != "COUNTRIES.GERMANY" {
		t.Fatalf("expected key passthrough, got %q", plain[0].DisplayName)
	}
}
