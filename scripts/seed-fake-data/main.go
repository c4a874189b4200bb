// Seeds the catalog with fake products and reviews for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/oklog/ulid/v2"

	"github.com/gearshelf/gearshelf/internal/catalog"
	"github.com/gearshelf/gearshelf/service"
	"github.com/gearshelf/gearshelf/storage"
)

var storeLocales = []struct {
	locale string
	label  string
	host   string
}{
	{"en-US", "Amazon.com", "www.amazon.com"},
	{"en-GB", "Amazon UK", "www.amazon.co.uk"},
	{"de-DE", "Amazon Deutschland", "www.amazon.de"},
	{"pt-BR", "Amazon Brasil", "www.amazon.com.br"},
}

func main() {
	count := flag.Int("count", 25, "number of products to seed")
	flag.Parse()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(config.DBPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogService := catalog.New(store)
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		title := gofakeit.ProductName()

		links := make([]catalog.AffiliateLink, 0, 2)
		for _, entry := range storeLocales[:gofakeit.Number(1, len(storeLocales))] {
			links = append(links, catalog.AffiliateLink{
				URL:        fmt.Sprintf("https://%s/dp/%s?tag=gearshelf-20", entry.host, ulid.Make().String()[:10]),
				Locale:     entry.locale,
				StoreLabel: entry.label,
			})
		}

		reviews := make([]catalog.Review, 0, 5)
		for j := 0; j < gofakeit.Number(0, 5); j++ {
			reviews = append(reviews, catalog.Review{
				Author:  gofakeit.Name(),
				Rating:  float64(gofakeit.Number(1, 5)),
				Content: gofakeit.Sentence(12),
				Locale:  links[0].Locale,
			})
		}

		product, err := catalogService.Create(ctx, catalog.CreateProductInput{
			Title:       title,
			Price:       fmt.Sprintf("$%d.%02d", gofakeit.Number(5, 300), gofakeit.Number(0, 99)),
			ImageURL:    gofakeit.ImageURL(640, 480),
			Summary:     gofakeit.Sentence(8),
			Description: gofakeit.Paragraph(2, 3, 12, " "),
			Links:       links,
			Reviews:     reviews,
		})
		if err != nil {
			slog.Error("failed to seed product", "error", err, "title", title)
			continue
		}

		slog.Info("seeded product", "product_id", product.ID, "title", product.Title)
	}
}
