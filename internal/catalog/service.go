package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gearshelf/gearshelf/internal/importer"
	"github.com/gearshelf/gearshelf/storage"
	"github.com/gearshelf/gearshelf/storage/db"
)

// createAttempts bounds the retry loop around UNIQUE constraint
// violations during concurrent creation. The in-memory resolver already
// found a free title/slug; a violation means another writer took it
// between check and insert, so the next attempt re-resolves.
const createAttempts = 5

// Review is a persisted customer review owned by a product.
type Review struct {
	ID              string     `json:"id,omitempty"`
	Author          string     `json:"author"`
	Rating          float64    `json:"rating"`
	Content         string     `json:"content"`
	Locale          string     `json:"locale"`
	SourceTimestamp *time.Time `json:"source_timestamp,omitempty"`
	IsManual        bool       `json:"is_manual"`
}

// Product is the persisted catalog entity import results merge into.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Price       string          `json:"price,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Links       []AffiliateLink `json:"links"`
	Reviews     []Review        `json:"reviews"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductInput carries the fields for a new catalog product. Title
// and slug uniqueness are resolved by the service, not the caller.
type CreateProductInput struct {
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	ImageURL    string          `json:"image_url"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Links       []AffiliateLink `json:"links"`
	Reviews     []Review        `json:"reviews"`
}

// UpdateProductInput carries a partial update. Nil field pointers mean
// "no change". Links and Reviews follow the asymmetric replacement rule:
// an empty or absent links array keeps the existing links (guarding
// against accidental loss from a partial request), while an explicitly
// provided empty reviews array clears all reviews.
type UpdateProductInput struct {
	ID          string
	Title       *string         `json:"title"`
	Price       *string         `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Summary     *string         `json:"summary"`
	Description *string         `json:"description"`
	Links       []AffiliateLink `json:"links"`
	Reviews     *[]Review       `json:"reviews"`
}

// Service owns all catalog writes the pipeline performs.
type Service struct {
	storage *storage.Storage
}

func New(s *storage.Storage) *Service {
	return &Service{storage: s}
}

// TitleExists implements Lookup against the catalog store.
func (s *Service) TitleExists(ctx context.Context, title string) (bool, error) {
	count, err := s.storage.Queries.CountProductsByTitle(ctx, title)
	return count > 0, err
}

// SlugExists implements Lookup against the catalog store.
func (s *Service) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	count, err := s.storage.Queries.CountProductsBySlug(ctx, db.CountProductsBySlugParams{
		Slug: slug,
		ID:   excludeID,
	})
	return count > 0, err
}

// Create resolves a unique title/slug and writes the product with its
// links and reviews in one transaction. A UNIQUE violation from a
// concurrent writer rolls the attempt back and re-resolves; a failed
// create leaves no partial product behind.
func (s *Service) Create(ctx context.Context, in CreateProductInput) (*Product, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		title, err := ResolveTitle(ctx, s, in.Title)
		if err != nil {
			return nil, err
		}

		slug, err := ResolveSlug(ctx, s, title, "")
		if err != nil {
			return nil, err
		}

		product, err := s.insertProduct(ctx, in, title, slug)
		if err == nil {
			return product, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}

		slog.Debug("unique constraint hit during create, re-resolving", "title", title, "slug", slug, "attempt", attempt+1)
	}

	return nil, ErrUniquenessExhausted
}

func (s *Service) insertProduct(ctx context.Context, in CreateProductInput, title, slug string) (*Product, error) {
	tx, err := s.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	qtx := s.storage.Queries.WithTx(tx)

	row, err := qtx.CreateProduct(ctx, db.CreateProductParams{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        slug,
		Price:       nullString(in.Price),
		ImageUrl:    nullString(in.ImageURL),
		Summary:     nullString(in.Summary),
		Description: nullString(in.Description),
	})
	if err != nil {
		return nil, err
	}

	if err := insertLinks(ctx, qtx, row.ID, in.Links); err != nil {
		return nil, err
	}
	if err := insertReviews(ctx, qtx, row.ID, in.Reviews); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	return s.Get(ctx, row.ID)
}

// Update applies a partial update. A title change re-resolves title and
// slug with the product's own id excluded from the collision check. All
// writes happen in one transaction, so a failure mid-resolution leaves
// the previously-resolved identity untouched. A UNIQUE violation from a
// concurrent rename rolls the attempt back and re-resolves, same as
// Create.
func (s *Service) Update(ctx context.Context, in UpdateProductInput) (*Product, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		product, err := s.applyUpdate(ctx, in)
		if err == nil {
			return product, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}

		slog.Debug("unique constraint hit during update, re-resolving", "product_id", in.ID, "attempt", attempt+1)
	}

	return nil, ErrUniquenessExhausted
}

func (s *Service) applyUpdate(ctx context.Context, in UpdateProductInput) (*Product, error) {
	current, err := s.storage.Queries.GetProduct(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", in.ID, err)
	}

	title := current.Title
	slug := current.Slug
	if in.Title != nil && strings.TrimSpace(*in.Title) != current.Title {
		title, err = ResolveTitle(ctx, s, *in.Title)
		if err != nil {
			return nil, err
		}
		slug, err = ResolveSlug(ctx, s, title, in.ID)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	qtx := s.storage.Queries.WithTx(tx)

	_, err = qtx.UpdateProductDetails(ctx, db.UpdateProductDetailsParams{
		Title:       title,
		Slug:        slug,
		Price:       mergeNull(current.Price, in.Price),
		ImageUrl:    mergeNull(current.ImageUrl, in.ImageURL),
		Summary:     mergeNull(current.Summary, in.Summary),
		Description: mergeNull(current.Description, in.Description),
		ID:          in.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", in.ID, err)
	}

	// Links: empty or absent means keep — a malformed partial request
	// must not wipe them
	if len(in.Links) > 0 {
		if err := qtx.DeleteProductAffiliateLinks(ctx, in.ID); err != nil {
			return nil, err
		}
		if err := insertLinks(ctx, qtx, in.ID, in.Links); err != nil {
			return nil, err
		}
	}

	// Reviews: an explicitly provided array replaces wholesale, and an
	// explicitly empty one clears everything
	if in.Reviews != nil {
		if err := qtx.DeleteProductReviews(ctx, in.ID); err != nil {
			return nil, err
		}
		if err := insertReviews(ctx, qtx, in.ID, *in.Reviews); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return s.Get(ctx, in.ID)
}

// MergeReviews deduplicates a freshly extracted batch against the
// product's persisted reviews and appends only the new ones. Re-importing
// an unchanged source never grows the review count.
func (s *Service) MergeReviews(ctx context.Context, productID string, batch []importer.RawReview) (int, error) {
	persisted, err := s.storage.Queries.ListProductReviews(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("list reviews for %s: %w", productID, err)
	}

	existing := make([]importer.RawReview, 0, len(persisted))
	for _, r := range persisted {
		existing = append(existing, importer.RawReview{
			Author:  r.Author.String,
			Rating:  r.Rating,
			Content: r.Content,
		})
	}

	fresh := importer.FilterNew(existing, batch)
	if len(fresh) == 0 {
		return 0, nil
	}

	tx, err := s.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin merge: %w", err)
	}
	defer tx.Rollback()

	qtx := s.storage.Queries.WithTx(tx)
	position := int64(len(persisted))

	for _, raw := range fresh {
		_, err := qtx.CreateReview(ctx, db.CreateReviewParams{
			ID:              uuid.New().String(),
			ProductID:       productID,
			Author:          nullString(raw.Author),
			Rating:          importer.ClampRating(raw.Rating),
			Content:         raw.Content,
			Locale:          nullString(raw.Locale),
			SourceTimestamp: nullTime(raw.SourceTimestamp),
			IsManual:        false,
			Position:        position,
		})
		if err != nil {
			return 0, fmt.Errorf("insert review: %w", err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit merge: %w", err)
	}

	return len(fresh), nil
}

// Get loads a product with its links and reviews.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	row, err := s.storage.Queries.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	links, err := s.storage.Queries.ListProductAffiliateLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.storage.Queries.ListProductReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	product := &Product{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Price:       row.Price.String,
		ImageURL:    row.ImageUrl.String,
		Summary:     row.Summary.String,
		Description: row.Description.String,
		Links:       make([]AffiliateLink, 0, len(links)),
		Reviews:     make([]Review, 0, len(reviews)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	for _, l := range links {
		product.Links = append(product.Links, AffiliateLink{
			URL:           l.Url,
			Locale:        l.Locale,
			StoreLabel:    l.StoreLabel.String,
			EmbeddedTitle: l.EmbeddedTitle.String,
		})
	}

	for _, r := range reviews {
		var ts *time.Time
		if r.SourceTimestamp.Valid {
			t := r.SourceTimestamp.Time
			ts = &t
		}
		product.Reviews = append(product.Reviews, Review{
			ID:              r.ID,
			Author:          r.Author.String,
			Rating:          r.Rating,
			Content:         r.Content,
			Locale:          r.Locale.String,
			SourceTimestamp: ts,
			IsManual:        r.IsManual,
		})
	}

	return product, nil
}

// List returns a page of products without their owned collections.
func (s *Service) List(ctx context.Context, limit, offset int64) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := s.storage.Queries.ListProducts(ctx, db.ListProductsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Product{
			ID:        row.ID,
			Title:     row.Title,
			Slug:      row.Slug,
			Price:     row.Price.String,
			ImageURL:  row.ImageUrl.String,
			Summary:   row.Summary.String,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return products, nil
}

// ResolveLink picks the outbound URL for a viewer locale.
func (s *Service) ResolveLink(ctx context.Context, productID, viewerLocale string) (string, error) {
	rows, err := s.storage.Queries.ListProductAffiliateLinks(ctx, productID)
	if err != nil {
		return NoLink, fmt.Errorf("list links for %s: %w", productID, err)
	}

	links := make([]AffiliateLink, 0, len(rows))
	for _, l := range rows {
		links = append(links, AffiliateLink{
			URL:        l.Url,
			Locale:     l.Locale,
			StoreLabel: l.StoreLabel.String,
		})
	}

	return SelectLink(links, viewerLocale), nil
}

func insertLinks(ctx context.Context, qtx *db.Queries, productID string, links []AffiliateLink) error {
	for i, link := range links {
		_, err := qtx.CreateAffiliateLink(ctx, db.CreateAffiliateLinkParams{
			ID:            uuid.New().String(),
			ProductID:     productID,
			Url:           link.URL,
			Locale:        link.Locale,
			StoreLabel:    nullString(link.StoreLabel),
			EmbeddedTitle: nullString(link.EmbeddedTitle),
			Position:      int64(i),
		})
		if err != nil {
			return fmt.Errorf("insert link: %w", err)
		}
	}
	return nil
}

func insertReviews(ctx context.Context, qtx *db.Queries, productID string, reviews []Review) error {
	for i, review := range reviews {
		_, err := qtx.CreateReview(ctx, db.CreateReviewParams{
			ID:              uuid.New().String(),
			ProductID:       productID,
			Author:          nullString(review.Author),
			Rating:          importer.ClampRating(review.Rating),
			Content:         review.Content,
			Locale:          nullString(review.Locale),
			SourceTimestamp: nullTime(review.SourceTimestamp),
			IsManual:        review.IsManual,
			Position:        int64(i),
		})
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
	}
	return nil
}

// isUniqueViolation detects a UNIQUE constraint failure across both
// sqlite drivers in use (modernc at runtime, mattn in tests), which only
// agree on the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mergeNull keeps the current value when the update leaves a field unset.
func mergeNull(current sql.NullString, in *string) sql.NullString {
	if in == nil {
		return current
	}
	return nullString(*in)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
