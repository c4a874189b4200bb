// Bulk-imports product listings from a list of URLs, one catalog product
// per URL. URLs are passed as arguments or one per line on stdin.
//
// Usage:
//
//	go run ./scripts/import-products https://www.amazon.com/dp/B0...
//	cat urls.txt | go run ./scripts/import-products -adapter provider
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/gearshelf/gearshelf/internal/catalog"
	"github.com/gearshelf/gearshelf/internal/importer"
	"github.com/gearshelf/gearshelf/service"
	"github.com/gearshelf/gearshelf/storage"
)

func main() {
	adapterName := flag.String("adapter", "page", "source adapter: page or provider")
	workers := flag.Int("workers", 4, "concurrent imports")
	flag.Parse()

	_ = godotenv.Load()

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

	urls := flag.Args()
	if len(urls) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				urls = append(urls, line)
			}
		}
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "no URLs given")
		os.Exit(1)
	}

	client := importer.NewHTTPClient(config.Import.Timeout)
	var adapter importer.SourceAdapter
	switch *adapterName {
	case "page":
		adapter = importer.NewPageAdapter(client)
	case "provider":
		adapter = importer.NewProviderClient(config.Provider.APIBase, config.Provider.APIKey, config.Import.Timeout)
	default:
		fmt.Fprintf(os.Stderr, "unknown adapter %q\n", *adapterName)
		os.Exit(1)
	}

	catalogService := catalog.New(store)

	// Each import is independent, so they run concurrently; the catalog
	// store serializes the identity resolution on its unique indexes.
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for _, url := range urls {
		g.Go(func() error {
			extract, err := adapter.FetchProduct(ctx, url)
			if err != nil {
				slog.Error("import failed", "url", url, "kind", importer.ErrorKind(err), "error", err)
				return nil // keep going; failed imports are re-run wholesale
			}

			product, err := catalogService.Create(ctx, catalog.CreateProductInput{
				Title:       extract.Title,
				Price:       extract.Price,
				ImageURL:    extract.ImageURL,
				Summary:     extract.Summary,
				Description: extract.Description,
				Links: []catalog.AffiliateLink{{
					URL:        extract.PrimaryLink.URL,
					Locale:     extract.PrimaryLink.Locale,
					StoreLabel: extract.PrimaryLink.StoreLabel,
				}},
			})
			if err != nil {
				slog.Error("create failed", "url", url, "error", err)
				return nil
			}

			slog.Info("imported", "url", url, "product_id", product.ID, "title", product.Title, "slug", product.Slug)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("bulk import aborted", "error", err)
		os.Exit(1)
	}
}
