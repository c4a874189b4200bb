package importer

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gearshelf/gearshelf/internal/locale"
)

// PageAdapter builds a ProductExtract by fetching and parsing the listing
// page itself. Embedded structured data is preferred; page metadata and
// marketplace DOM heuristics fill whatever structured data misses.
type PageAdapter struct {
	client *HTTPClient
}

func NewPageAdapter(client *HTTPClient) *PageAdapter {
	return &PageAdapter{client: client}
}

func (a *PageAdapter) Name() string {
	return "page"
}

// FetchProduct fetches a listing and normalizes it. The fetch itself uses
// the redirect-resolved URL; the extracted link keeps the original input
// URL so affiliate parameters are never rewritten. Missing fields degrade
// to empty values — only a hard fetch failure is an error.
func (a *PageAdapter) FetchProduct(ctx context.Context, productURL string) (*ProductExtract, error) {
	resolved := a.client.ResolveFinalURL(ctx, productURL)

	body, err := a.client.Get(ctx, resolved)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", resolved, ErrUpstreamEmpty)
	}

	host := hostnameOf(resolved)
	info := locale.Classify(host)

	extract := &ProductExtract{
		PrimaryLink: ExtractedLink{
			URL:        productURL,
			Locale:     info.Locale,
			StoreLabel: info.StoreLabel,
		},
	}

	// Structured data first
	for _, obj := range scanJSONLD(doc) {
		if !hasType(obj, "Product") {
			continue
		}
		extract.Title = stringField(obj, "name")
		extract.ImageURL = stringField(obj, "image")
		extract.Description = stringField(obj, "description")
		extract.Price = offerPrice(obj)
		break
	}

	// Page metadata fills the gaps
	if extract.Title == "" {
		extract.Title = metaContent(doc, `meta[property="og:title"]`, `meta[name="title"]`)
	}
	if extract.Title == "" {
		extract.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if extract.ImageURL == "" {
		extract.ImageURL = metaContent(doc, `meta[property="og:image"]`, `meta[itemprop="image"]`)
	}
	if extract.Description == "" {
		extract.Description = metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`)
	}
	if extract.Price == "" {
		extract.Price = metaContent(doc, `meta[property="product:price:amount"]`, `meta[itemprop="price"]`)
	}

	// Marketplace pages carry a feature-bullet list that makes a usable
	// short summary
	if locale.Known(host) {
		extract.Summary = featureBulletSummary(doc, 2)
	}
	if extract.Summary == "" {
		extract.Summary = shorten(extract.Description, 280)
	}

	if len(extract.Description) > 2000 {
		extract.Description = extract.Description[:2000]
	}

	extract.SlugBasis = extract.Title
	return extract, nil
}

// offerPrice pulls the display price out of a Product object's offers,
// keeping the source formatting and appending the currency when the
// source carries one separately.
func offerPrice(product map[string]any) string {
	var offer map[string]any
	switch v := product["offers"].(type) {
	case map[string]any:
		offer = v
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				offer = m
				break
			}
		}
	}
	if offer == nil {
		return ""
	}

	var price string
	for _, key := range []string{"price", "lowPrice"} {
		switch v := offer[key].(type) {
		case string:
			price = strings.TrimSpace(v)
		case float64:
			price = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if price != "" {
			break
		}
	}
	if price == "" {
		return ""
	}

	if currency := stringField(offer, "priceCurrency"); currency != "" {
		return price + " " + currency
	}
	return price
}

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// featureBulletSummary joins the first n feature bullets of a marketplace
// listing into a short summary.
func featureBulletSummary(doc *goquery.Document, n int) string {
	var bullets []string

	doc.Find("#feature-bullets li, #featurebullets_feature_div li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseWhitespace(sel.Text())
		if text != "" {
			bullets = append(bullets, text)
		}
		return len(bullets) < n
	})

	return strings.Join(bullets, " · ")
}

func shorten(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
