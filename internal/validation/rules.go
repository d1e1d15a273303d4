package validation

import (
	"regexp"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	localePattern      = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z]{2})?$`)
	categoryPattern    = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// CountryCode matches ISO 3166-1 alpha-2 codes. Reserved pseudo codes do not match.
var CountryCode = ozzo.Match(countryCodePattern).
	ErrorObject(ozzo.NewError("funfacts.country_code_invalid", "must be an uppercase ISO 3166-1 alpha-2 code"))

// Locale matches short language tags such as "de" or "en-GB".
var Locale = ozzo.Match(localePattern).
	ErrorObject(ozzo.NewError("funfacts.locale_invalid", "must be a language tag such as de or en-GB"))

// Category matches lowercase category identifiers.
var Category = ozzo.Match(categoryPattern).
	ErrorObject(ozzo.NewError("funfacts.category_invalid", "must be a lowercase identifier"))

// IsCountryCode reports whether value is a well-formed ISO country code.
func IsCountryCode(value string) bool {
	return countryCodePattern.MatchString(value)
}
