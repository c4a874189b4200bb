package importer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractStructuredReviews_ProductSubReviews(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		{
			"@type": "Product",
			"name": "Camp Stove",
			"review": [
				{
					"@type": "Review",
					"author": {"@type": "Person", "name": "José Silva"},
					"reviewBody": "Ótimo produto,   recomendo",
					"reviewRating": {"ratingValue": "4.5"},
					"inLanguage": "pt-BR",
					"datePublished": "2024-03-10"
				},
				{
					"@type": "Review",
					"reviewBody": "Solid and light"
				}
			]
		}
		</script>
	</head><body></body></html>`)

	reviews := extractStructuredReviews(doc, "en-US")
	require.Len(t, reviews, 2)

	assert.Equal(t, "José Silva", reviews[0].Author)
	assert.Equal(t, 4.5, reviews[0].Rating)
	assert.Equal(t, "Ótimo produto, recomendo", reviews[0].Content)
	assert.Equal(t, "pt-BR", reviews[0].Locale)
	require.NotNil(t, reviews[0].SourceTimestamp)
	assert.Equal(t, "2024-03-10", reviews[0].SourceTimestamp.Format("2006-01-02"))

	assert.Equal(t, "Anonymous", reviews[1].Author)
	assert.Equal(t, 0.0, reviews[1].Rating)
	assert.Equal(t, "en-US", reviews[1].Locale)
	assert.Nil(t, reviews[1].SourceTimestamp)
}

func TestExtractStructuredReviews_StandaloneReviewObjects(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		[
			{"@type": "Review", "author": "Ann", "reviewBody": "Great value", "reviewRating": {"ratingValue": 5}},
			{"@type": "Review", "author": "Bob", "reviewBody": ""},
			{"@type": "WebPage", "name": "ignored"}
		]
		</script>
		<script type="application/ld+json">not valid json</script>
	</head><body></body></html>`)

	reviews := extractStructuredReviews(doc, "en-GB")
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ann", reviews[0].Author)
	assert.Equal(t, 5.0, reviews[0].Rating)
	assert.Equal(t, "en-GB", reviews[0].Locale)
}

func TestExtractStructuredReviews_RatingClamped(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		{"@type": "Review", "reviewBody": "way too enthusiastic", "reviewRating": {"ratingValue": 11}}
		</script>
	</head></html>`)

	reviews := extractStructuredReviews(doc, "en-US")
	require.Len(t, reviews, 1)
	assert.Equal(t, 5.0, reviews[0].Rating)
}

func TestExtractStructuredReviews_NothingFound(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>plain page</p></body></html>`)
	assert.Empty(t, extractStructuredReviews(doc, "en-US"))
}

func TestExtractDOMReviews_MarketplaceMarkup(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div id="cm-cr-dp-review-list">
			<div data-hook="review">
				<span class="a-profile-name">Maria</span>
				<i data-hook="review-star-rating"><span class="a-icon-alt">5,0 de 5 estrelas</span></i>
				<span data-hook="review-body">Chegou rápido e   bem embalado</span>
			</div>
			<div data-hook="review">
				<i data-hook="review-star-rating"><span class="a-icon-alt">3.0 out of 5 stars</span></i>
				<span data-hook="review-body">Average build quality</span>
			</div>
			<div data-hook="review">
				<span class="a-profile-name">Empty Body</span>
				<span data-hook="review-body">   </span>
			</div>
		</div>
	</body></html>`)

	reviews := extractDOMReviews(doc, "pt-BR")
	require.Len(t, reviews, 2)

	assert.Equal(t, "Maria", reviews[0].Author)
	assert.Equal(t, 5.0, reviews[0].Rating)
	assert.Equal(t, "Chegou rápido e bem embalado", reviews[0].Content)
	assert.Equal(t, "pt-BR", reviews[0].Locale)

	assert.Equal(t, "Anonymous", reviews[1].Author)
	assert.Equal(t, 3.0, reviews[1].Rating)
}

func TestExtractDOMReviews_GenericMarkup(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div class="review-list">
			<div class="review-item">
				<span class="review-author">Sam</span>
				<span class="review-rating">4 stars</span>
				<p class="review-text">Does what it says</p>
			</div>
		</div>
		<div class="review-item">
			<p class="review-text">Outside the list, ignored</p>
		</div>
	</body></html>`)

	reviews := extractDOMReviews(doc, "en-US")
	require.Len(t, reviews, 1)
	assert.Equal(t, "Sam", reviews[0].Author)
	assert.Equal(t, 4.0, reviews[0].Rating)
	assert.Equal(t, "Does what it says", reviews[0].Content)
}

func TestExtractDOMReviews_CapsAtLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><div class="review-list">`)
	for i := 0; i < maxDOMReviews+10; i++ {
		b.WriteString(`<div class="review"><p class="review-text">review body text</p></div>`)
	}
	b.WriteString(`</div></body></html>`)

	reviews := extractDOMReviews(docFromHTML(t, b.String()), "en-US")
	assert.Len(t, reviews, maxDOMReviews)
}

func TestParseSourceDate(t *testing.T) {
	assert.Nil(t, parseSourceDate(""))
	assert.Nil(t, parseSourceDate("last Tuesday"))

	ts := parseSourceDate("2024-06-01T10:30:00Z")
	require.NotNil(t, ts)
	assert.Equal(t, 2024, ts.Year())

	ts = parseSourceDate("2023-12-24")
	require.NotNil(t, ts)
	assert.Equal(t, 12, int(ts.Month()))
}
