package catalog

import (
	"strings"

	"github.com/gearshelf/gearshelf/internal/locale"
)

// NoLink is the sentinel returned when a product has no links at all.
const NoLink = ""

// AffiliateLink is a locale-tagged outbound link owned by a product. URL
// is stored verbatim — tracking parameters are never rewritten.
type AffiliateLink struct {
	URL           string `json:"url"`
	Locale        string `json:"locale"`
	StoreLabel    string `json:"store_label"`
	EmbeddedTitle string `json:"embedded_title,omitempty"`
}

// SelectLink resolves the outbound URL to show a viewer, in strict
// priority order: exact locale match, viewer country token in the link
// locale, viewer country token in the store label, first link, sentinel.
func SelectLink(links []AffiliateLink, viewerLocale string) string {
	if len(links) == 0 {
		return NoLink
	}

	viewer := locale.Normalize(viewerLocale)
	if viewer != "" {
		for _, link := range links {
			if locale.Normalize(link.Locale) == viewer {
				return link.URL
			}
		}
	}

	if token := locale.CountryToken(viewerLocale); token != "" {
		for _, link := range links {
			if strings.Contains(strings.ToUpper(link.Locale), token) {
				return link.URL
			}
		}
		for _, link := range links {
			if strings.Contains(strings.ToUpper(link.StoreLabel), token) {
				return link.URL
			}
		}
	}

	return links[0].URL
}
