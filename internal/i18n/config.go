package i18n

// Config describes which locales a translation fixture serves.
type Config struct {
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales"`
}
