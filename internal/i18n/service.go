package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

// ErrTranslationMissing is returned when no locale in the fallback chain knows a key.
var ErrTranslationMissing = errors.New("i18n: translation missing")

// Service exposes a translator plus the locale it falls back to.
type Service interface {
	Translator() interfaces.Translator
	DefaultLocale() string
}

type memoryService struct {
	defaultLocale string
	translations  map[string]map[string]string
}

// NewInMemoryService builds a service over a locale -> key -> text map.
func NewInMemoryService(cfg Config, translations map[string]map[string]string) (Service, error) {
	defaultLocale := normalizeLocale(cfg.DefaultLocale)
	if defaultLocale == "" && len(cfg.Locales) > 0 {
		defaultLocale = normalizeLocale(cfg.Locales[0])
	}

	store := make(map[string]map[string]string, len(translations))
	for locale, entries := range translations {
		code := normalizeLocale(locale)
		if code == "" {
			return nil, fmt.Errorf("i18n: empty locale in translations")
		}
		copied := make(map[string]string, len(entries))
		for key, value := range entries {
			copied[key] = value
		}
		store[code] = copied
	}
	if defaultLocale != "" {
		if _, ok := store[defaultLocale]; !ok {
			return nil, fmt.Errorf("i18n: default locale %q has no translations", defaultLocale)
		}
	}

	return &memoryService{defaultLocale: defaultLocale, translations: store}, nil
}

// NewDefaultService loads the embedded country name translations.
func NewDefaultService() (Service, error) {
	fixture, err := DefaultFixture()
	if err != nil {
		return nil, err
	}
	return NewInMemoryService(fixture.Config, fixture.Translations)
}

func (s *memoryService) Translator() interfaces.Translator {
	return memoryTranslator{service: s}
}

func (s *memoryService) DefaultLocale() string {
	return s.defaultLocale
}

type memoryTranslator struct {
	service *memoryService
}

// Translate walks locale, its regional parent and then the default locale.
func (t memoryTranslator) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range t.service.chain(locale) {
		entries, ok := t.service.translations[candidate]
		if !ok {
			continue
		}
		if value, ok := entries[key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(value, args...), nil
			}
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrTranslationMissing, key, locale)
}

func (s *memoryService) chain(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	add := func(code string) {
		if code == "" {
			return
		}
		for _, existing := range out {
			if existing == code {
				return
			}
		}
		out = append(out, code)
	}
	add(locale)
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		add(locale[:idx])
	}
	add(s.defaultLocale)
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
