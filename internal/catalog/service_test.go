package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshelf/gearshelf/internal/importer"
	"github.com/gearshelf/gearshelf/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return New(store)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	product, err := service.Create(ctx, CreateProductInput{
		Title:       "Camp Stove",
		Price:       "$39.99",
		ImageURL:    "https://cdn.example.com/stove.jpg",
		Summary:     "Compact stove",
		Description: "A compact stove for backpacking.",
		Links: []AffiliateLink{
			{URL: "https://www.amazon.com/dp/B01?tag=gearshelf-20", Locale: "en-US", StoreLabel: "Amazon.com"},
		},
		Reviews: []Review{
			{Author: "Ann", Rating: 5, Content: "Great stove", Locale: "en-US"},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Camp Stove", product.Title)
	assert.Equal(t, "camp-stove", product.Slug)
	assert.Equal(t, "$39.99", product.Price)
	require.Len(t, product.Links, 1)
	assert.Equal(t, "https://www.amazon.com/dp/B01?tag=gearshelf-20", product.Links[0].URL)
	require.Len(t, product.Reviews, 1)
	assert.Equal(t, "Ann", product.Reviews[0].Author)
}

func TestService_Create_ResolvesDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	first, err := service.Create(ctx, CreateProductInput{Title: "Camp Stove"})
	require.NoError(t, err)

	second, err := service.Create(ctx, CreateProductInput{Title: "Camp Stove"})
	require.NoError(t, err)

	third, err := service.Create(ctx, CreateProductInput{Title: "Camp Stove"})
	require.NoError(t, err)

	assert.Equal(t, "Camp Stove", first.Title)
	assert.Equal(t, "camp-stove", first.Slug)
	assert.Equal(t, "Camp Stove 2", second.Title)
	assert.Equal(t, "camp-stove-2", second.Slug)
	assert.Equal(t, "Camp Stove 3", third.Title)
	assert.Equal(t, "camp-stove-3", third.Slug)
}

func TestService_Create_ClampsReviewRating(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	product, err := service.Create(ctx, CreateProductInput{
		Title:   "Lantern",
		Reviews: []Review{{Author: "Bob", Rating: 9.5, Content: "Bright"}},
	})
	require.NoError(t, err)

	require.Len(t, product.Reviews, 1)
	assert.Equal(t, 5.0, product.Reviews[0].Rating)
}

func TestService_Update_PartialFieldsKeepRest(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title:   "Lantern",
		Price:   "$24.50",
		Summary: "A lantern",
	})
	require.NoError(t, err)

	newPrice := "$19.99"
	updated, err := service.Update(ctx, UpdateProductInput{
		ID:    created.ID,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "$19.99", updated.Price)
	assert.Equal(t, "Lantern", updated.Title)
	assert.Equal(t, "A lantern", updated.Summary)
}

func TestService_Update_TitleChangeReResolvesSlug(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_, err := service.Create(ctx, CreateProductInput{Title: "Camp Stove"})
	require.NoError(t, err)

	created, err := service.Create(ctx, CreateProductInput{Title: "Lantern"})
	require.NoError(t, err)

	// Renaming onto a taken title picks the suffixed variant
	newTitle := "Camp Stove"
	updated, err := service.Update(ctx, UpdateProductInput{ID: created.ID, Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Camp Stove 2", updated.Title)
	assert.Equal(t, "camp-stove-2", updated.Slug)
}

func TestService_Update_RepeatedRenamesOntoTakenTitle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_, err := service.Create(ctx, CreateProductInput{Title: "Camp Stove"})
	require.NoError(t, err)

	second, err := service.Create(ctx, CreateProductInput{Title: "Lantern"})
	require.NoError(t, err)

	third, err := service.Create(ctx, CreateProductInput{Title: "Tarp"})
	require.NoError(t, err)

	// Every rename onto the contested title resolves a fresh suffix
	// instead of surfacing a constraint error
	contested := "Camp Stove"
	updatedSecond, err := service.Update(ctx, UpdateProductInput{ID: second.ID, Title: &contested})
	require.NoError(t, err)
	assert.Equal(t, "Camp Stove 2", updatedSecond.Title)

	updatedThird, err := service.Update(ctx, UpdateProductInput{ID: third.ID, Title: &contested})
	require.NoError(t, err)
	assert.Equal(t, "Camp Stove 3", updatedThird.Title)
	assert.Equal(t, "camp-stove-3", updatedThird.Slug)
}

func TestService_Update_UnchangedTitleKeepsSlug(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{Title: "Lantern"})
	require.NoError(t, err)

	sameTitle := "Lantern"
	updated, err := service.Update(ctx, UpdateProductInput{ID: created.ID, Title: &sameTitle})
	require.NoError(t, err)

	assert.Equal(t, "Lantern", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestService_Update_EmptyLinksKeepExisting(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title: "Lantern",
		Links: []AffiliateLink{{URL: "https://www.amazon.com/dp/B01", Locale: "en-US"}},
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, UpdateProductInput{ID: created.ID, Links: nil})
	require.NoError(t, err)
	require.Len(t, updated.Links, 1)

	updated, err = service.Update(ctx, UpdateProductInput{ID: created.ID, Links: []AffiliateLink{}})
	require.NoError(t, err)
	require.Len(t, updated.Links, 1)
}

func TestService_Update_LinksReplaceWholesale(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title: "Lantern",
		Links: []AffiliateLink{
			{URL: "https://www.amazon.com/dp/B01", Locale: "en-US"},
			{URL: "https://www.amazon.co.uk/dp/B01", Locale: "en-GB"},
		},
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, UpdateProductInput{
		ID:    created.ID,
		Links: []AffiliateLink{{URL: "https://www.amazon.com.br/dp/B01", Locale: "pt-BR"}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Links, 1)
	assert.Equal(t, "pt-BR", updated.Links[0].Locale)
}

func TestService_Update_EmptyReviewsClearAll(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title:   "Lantern",
		Reviews: []Review{{Author: "Ann", Rating: 5, Content: "Bright"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Reviews, 1)

	// Nil pointer keeps the reviews
	updated, err := service.Update(ctx, UpdateProductInput{ID: created.ID})
	require.NoError(t, err)
	require.Len(t, updated.Reviews, 1)

	// An explicitly empty array clears them
	empty := []Review{}
	updated, err = service.Update(ctx, UpdateProductInput{ID: created.ID, Reviews: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Reviews)
}

func TestService_MergeReviews_Idempotent(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title:   "Lantern",
		Reviews: []Review{{Author: "José", Rating: 5, Content: "Ótimo produto"}},
	})
	require.NoError(t, err)

	batch := []importer.RawReview{
		{Author: "jose", Rating: 5, Content: "otimo produto", Locale: "pt-BR"},
		{Author: "Maria", Rating: 4, Content: "Chegou rápido", Locale: "pt-BR"},
	}

	added, err := service.MergeReviews(ctx, created.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// Re-importing the unchanged batch adds nothing
	added, err = service.MergeReviews(ctx, created.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	product, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, product.Reviews, 2)
	assert.Equal(t, "Maria", product.Reviews[1].Author)
	assert.False(t, product.Reviews[1].IsManual)
}

func TestService_MergeReviews_OutOfRangeRatingStaysIdempotent(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{Title: "Lantern"})
	require.NoError(t, err)

	// The stored row carries the clamped rating; re-merging the raw batch
	// must still match it
	batch := []importer.RawReview{{Author: "Ann", Rating: 7, Content: "Bright"}}

	added, err := service.MergeReviews(ctx, created.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = service.MergeReviews(ctx, created.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	product, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, product.Reviews, 1)
	assert.Equal(t, 5.0, product.Reviews[0].Rating)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	for _, title := range []string{"Stove", "Lantern", "Tent"} {
		_, err := service.Create(ctx, CreateProductInput{Title: title})
		require.NoError(t, err)
	}

	products, err := service.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = service.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestService_ResolveLink(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, CreateProductInput{
		Title: "Lantern",
		Links: []AffiliateLink{
			{URL: "https://www.amazon.com/dp/B01", Locale: "en-US", StoreLabel: "Amazon.com"},
			{URL: "https://www.amazon.com.br/dp/B01", Locale: "pt-BR", StoreLabel: "Amazon Brasil"},
		},
	})
	require.NoError(t, err)

	url, err := service.ResolveLink(ctx, created.ID, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com.br/dp/B01", url)

	bare, err := service.Create(ctx, CreateProductInput{Title: "Tarp"})
	require.NoError(t, err)

	url, err = service.ResolveLink(ctx, bare.ID, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, NoLink, url)
}
