package importer

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gearshelf/gearshelf/internal/locale"
)

// maxDOMReviews caps what the heuristic extractor will pull from a single
// page; review lists past the first page need another import call.
const maxDOMReviews = 24

// reviewListSelector scopes heuristic parsing to known review-list
// containers so unrelated page blocks never leak in.
const reviewListSelector = `#cm-cr-dp-review-list, #cm_cr-review_list, #customer-reviews, .review-list`

// reviewBlockSelector matches one review inside the list container.
const reviewBlockSelector = `[data-hook="review"], .review, .review-item`

// FetchStructuredReviews extracts reviews from a page's embedded
// structured data. Both standalone Review objects and Product objects
// carrying a review sub-list are accepted. Nothing found is not an error.
func (a *PageAdapter) FetchStructuredReviews(ctx context.Context, pageURL string) ([]RawReview, error) {
	doc, pageLocale, err := a.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractStructuredReviews(doc, pageLocale), nil
}

// FetchDOMReviews extracts reviews with DOM heuristics, for pages whose
// structured data is absent or incomplete.
func (a *PageAdapter) FetchDOMReviews(ctx context.Context, pageURL string) ([]RawReview, error) {
	doc, pageLocale, err := a.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractDOMReviews(doc, pageLocale), nil
}

func (a *PageAdapter) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, string, error) {
	resolved := a.client.ResolveFinalURL(ctx, pageURL)

	body, err := a.client.Get(ctx, resolved)
	if err != nil {
		return nil, "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}

	return doc, locale.Classify(hostnameOf(resolved)).Locale, nil
}

func extractStructuredReviews(doc *goquery.Document, fallbackLocale string) []RawReview {
	var reviews []RawReview

	for _, obj := range scanJSONLD(doc) {
		switch {
		case hasType(obj, "Review"):
			if review, ok := mapStructuredReview(obj, fallbackLocale); ok {
				reviews = append(reviews, review)
			}
		case hasType(obj, "Product"):
			for _, sub := range subReviews(obj) {
				if review, ok := mapStructuredReview(sub, fallbackLocale); ok {
					reviews = append(reviews, review)
				}
			}
		}
	}

	return reviews
}

// subReviews collects the review/reviews sub-list of a Product object,
// accepting both a singleton object and an array.
func subReviews(product map[string]any) []map[string]any {
	var objects []map[string]any
	for _, key := range []string{"review", "reviews"} {
		switch v := product[key].(type) {
		case map[string]any:
			objects = append(objects, v)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					objects = append(objects, m)
				}
			}
		}
	}
	return objects
}

func mapStructuredReview(obj map[string]any, fallbackLocale string) (RawReview, bool) {
	content := collapseWhitespace(stringField(obj, "reviewBody", "description"))
	if content == "" {
		return RawReview{}, false
	}

	author := stringField(obj, "author")
	if author == "" {
		author = anonymousAuthor
	}

	var rating float64
	if rr, ok := obj["reviewRating"].(map[string]any); ok {
		rating = asNumber(rr["ratingValue"])
	} else {
		rating = asNumber(obj["ratingValue"])
	}

	reviewLocale := stringField(obj, "inLanguage")
	if reviewLocale == "" {
		reviewLocale = fallbackLocale
	}

	return RawReview{
		Author:          author,
		Rating:          ClampRating(rating),
		Content:         content,
		Locale:          reviewLocale,
		SourceTimestamp: parseSourceDate(stringField(obj, "datePublished")),
	}, true
}

func extractDOMReviews(doc *goquery.Document, fallbackLocale string) []RawReview {
	var reviews []RawReview

	doc.Find(reviewListSelector).First().Find(reviewBlockSelector).
		EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			content := collapseWhitespace(sel.Find(`[data-hook="review-body"], .review-text, .review-body`).First().Text())
			if content == "" {
				return true
			}

			author := collapseWhitespace(sel.Find(`.a-profile-name, .review-author, .author`).First().Text())
			if author == "" {
				author = anonymousAuthor
			}

			ratingText := sel.Find(`[data-hook="review-star-rating"], .review-rating, .a-icon-alt`).First().Text()

			reviews = append(reviews, RawReview{
				Author:  author,
				Rating:  ParseRating(ratingText),
				Content: content,
				Locale:  fallbackLocale,
			})

			return len(reviews) < maxDOMReviews
		})

	return reviews
}

func parseSourceDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
