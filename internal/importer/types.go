package importer

import (
	"context"
	"time"
)

// ExtractedLink is the outbound link captured during an import. URL keeps
// the original input verbatim so affiliate tracking parameters survive.
type ExtractedLink struct {
	URL        string `json:"url"`
	Locale     string `json:"locale"`
	StoreLabel string `json:"store_label"`
}

// ProductExtract is the canonical product shape produced by one import
// call, regardless of which adapter produced it. Missing fields degrade to
// empty strings; only a hard fetch failure is an error.
type ProductExtract struct {
	Title       string        `json:"title"`
	SlugBasis   string        `json:"slug_basis"`
	Price       string        `json:"price"`
	ImageURL    string        `json:"image_url"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	PrimaryLink ExtractedLink `json:"primary_link"`
}

// RawReview is the canonical review shape produced by an extractor,
// pre-deduplication. Rating is not yet clamped.
type RawReview struct {
	Author          string     `json:"author"`
	Rating          float64    `json:"rating"`
	Content         string     `json:"content"`
	Locale          string     `json:"locale"`
	SourceTimestamp *time.Time `json:"source_timestamp,omitempty"`
}

// SourceAdapter turns a product URL into a ProductExtract. Adapters are
// selected explicitly by the caller; there is no automatic fallback
// between them.
type SourceAdapter interface {
	// Name returns the adapter name (e.g. "page", "provider")
	Name() string

	// FetchProduct fetches and normalizes a single product listing
	FetchProduct(ctx context.Context, productURL string) (*ProductExtract, error)
}

// anonymousAuthor is substituted when a source carries no author field.
const anonymousAuthor = "Anonymous"
