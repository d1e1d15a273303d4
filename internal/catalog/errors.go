package catalog

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrUnknownLocale indicates the locale is not loaded. There is no cross-locale fallback.
	ErrUnknownLocale = errors.New("catalog: unknown locale")
	// ErrUnknownCategory indicates the fact category is not loaded.
	ErrUnknownCategory = errors.New("catalog: unknown category")
	// ErrDefaultLocaleNotLoaded indicates the configured default locale is outside the loaded set.
	ErrDefaultLocaleNotLoaded = errors.New("catalog: default locale is not loaded")
)

const (
	textCodeLocaleNotFound   = "FACTS_LOCALE_NOT_FOUND"
	textCodeCategoryNotFound = "FACTS_CATEGORY_NOT_FOUND"
)

func unknownLocale(locale string) error {
	return goerrors.Wrap(ErrUnknownLocale, goerrors.CategoryNotFound, fmt.Sprintf("locale %q is not available", locale)).
		WithTextCode(textCodeLocaleNotFound)
}

func unknownCategory(category string) error {
	return goerrors.Wrap(ErrUnknownCategory, goerrors.CategoryNotFound, fmt.Sprintf("category %q is not available", category)).
		WithTextCode(textCodeCategoryNotFound)
}
