package catalog

import "strings"

// NormalizeLocale renders locale as lower_snake_case ("en-US" -> "en_us").
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	return strings.ToLower(strings.ReplaceAll(locale, "-", "_"))
}

// LocaleChain expands locales into the lookup order for a request: every
// locale is followed by its region-less form, then duplicates and blanks are
// dropped while keeping first occurrences.
//
//	LocaleChain("en-US", "es-MX", "en") // en_us, en, es_mx, es
func LocaleChain(locales ...string) []string {
	seen := make(map[string]struct{}, len(locales)*2)
	chain := make([]string, 0, len(locales)*2)
	add := func(locale string) {
		if locale == "" {
			return
		}
		if _, ok := seen[locale]; ok {
			return
		}
		seen[locale] = struct{}{}
		chain = append(chain, locale)
	}
	for _, locale := range locales {
		normalized := NormalizeLocale(locale)
		add(normalized)
		if base, _, ok := strings.Cut(normalized, "_"); ok {
			add(base)
		}
	}
	return chain
}
