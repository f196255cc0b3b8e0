package entity

// Campaign content is published in Turkish and English.
const (
	LocaleTurkish = "tr"
	LocaleEnglish = "en"
)

// NormalizeLocale maps any locale value onto a supported one.
// Turkish is the campaign's primary language and the fallback.
func NormalizeLocale(locale string) string {
	switch locale {
	case LocaleTurkish, LocaleEnglish:
		return locale
	default:
		return LocaleTurkish
	}
}
