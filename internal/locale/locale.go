package locale

import "strings"

// Info is the locale/store classification for a marketplace hostname.
type Info struct {
	Locale     string
	StoreLabel string
}

// Default is returned for any hostname not present in the marketplace table.
var Default = Info{Locale: "en-US", StoreLabel: "Amazon.com"}

// marketplaceEntry pairs a hostname suffix with its classification.
// The table is ordered so longer suffixes match before their parents
// (amazon.com.br must win over amazon.com).
type marketplaceEntry struct {
	suffix string
	info   Info
}

var marketplaces = []marketplaceEntry{
	{"amazon.com.br", Info{Locale: "pt-BR", StoreLabel: "Amazon Brasil"}},
	{"amazon.com.au", Info{Locale: "en-AU", StoreLabel: "Amazon Australia"}},
	{"amazon.com.mx", Info{Locale: "es-MX", StoreLabel: "Amazon México"}},
	{"amazon.co.uk", Info{Locale: "en-GB", StoreLabel: "Amazon UK"}},
	{"amazon.co.jp", Info{Locale: "ja-JP", StoreLabel: "Amazon Japan"}},
	{"amazon.de", Info{Locale: "de-DE", StoreLabel: "Amazon Deutschland"}},
	{"amazon.fr", Info{Locale: "fr-FR", StoreLabel: "Amazon France"}},
	{"amazon.es", Info{Locale: "es-ES", StoreLabel: "Amazon España"}},
	{"amazon.it", Info{Locale: "it-IT", StoreLabel: "Amazon Italia"}},
	{"amazon.ca", Info{Locale: "en-CA", StoreLabel: "Amazon Canada"}},
	{"amazon.com", Default},
}

// Classify maps a hostname to its marketplace locale and store label.
// Unknown hostnames fall back to the default entry. Every adapter must
// classify through this function so the same URL always yields the same
// locale/store no matter which adapter fetched it.
func Classify(hostname string) Info {
	host := strings.ToLower(strings.TrimSpace(hostname))
	host = strings.TrimSuffix(host, ".")

	for _, entry := range marketplaces {
		if host == entry.suffix || strings.HasSuffix(host, "."+entry.suffix) {
			return entry.info
		}
	}
	return Default
}

// Known reports whether the hostname belongs to a marketplace in the table.
func Known(hostname string) bool {
	host := strings.ToLower(strings.TrimSpace(hostname))
	host = strings.TrimSuffix(host, ".")

	for _, entry := range marketplaces {
		if host == entry.suffix || strings.HasSuffix(host, "."+entry.suffix) {
			return true
		}
	}
	return false
}

// Normalize canonicalizes a locale string for comparison: trimmed,
// lowercased language, uppercased country ("PT-br" -> "pt-BR").
func Normalize(l string) string {
	l = strings.TrimSpace(strings.ReplaceAll(l, "_", "-"))
	parts := strings.SplitN(l, "-", 2)
	if len(parts) == 1 {
		return strings.ToLower(parts[0])
	}
	return strings.ToLower(parts[0]) + "-" + strings.ToUpper(parts[1])
}

// CountryToken extracts the country component of a locale ("pt-BR" -> "BR").
// When the locale has no country component the whole token is uppercased,
// so bare "de" still matches links labeled with "DE".
func CountryToken(l string) string {
	norm := Normalize(l)
	if i := strings.LastIndex(norm, "-"); i >= 0 {
		return norm[i+1:]
	}
	return strings.ToUpper(norm)
}
