package interfaces

// Translator resolves a translation key for a locale. Country directory
// display-name keys are passed through it unchanged.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}
