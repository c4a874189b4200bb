package service

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gearshelf/gearshelf/internal/catalog"
	"github.com/gearshelf/gearshelf/internal/handlers"
	"github.com/gearshelf/gearshelf/internal/importer"
	"github.com/gearshelf/gearshelf/storage"
)

type Service struct {
	storage        *storage.Storage
	config         *Config
	catalog        *catalog.Service
	importHandler  *handlers.ImportHandler
	productHandler *handlers.ProductHandler
}

func New(storage *storage.Storage, config *Config) *Service {
	httpClient := importer.NewHTTPClient(config.Import.Timeout)
	pageAdapter := importer.NewPageAdapter(httpClient)
	providerClient := importer.NewProviderClient(config.Provider.APIBase, config.Provider.APIKey, config.Import.Timeout)

	catalogService := catalog.New(storage)

	return &Service{
		storage:        storage,
		config:         config,
		catalog:        catalogService,
		importHandler:  handlers.NewImportHandler(pageAdapter, providerClient),
		productHandler: handlers.NewProductHandler(catalogService),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// Ingestion: one adapter / strategy per call, selected by the caller
	api.POST("/import/product", s.importHandler.HandleImportProduct)
	api.POST("/import/reviews", s.importHandler.HandleImportReviews)

	// Catalog
	api.POST("/products", s.productHandler.HandleCreateProduct)
	api.GET("/products", s.productHandler.HandleListProducts)
	api.GET("/products/:id", s.productHandler.HandleGetProduct)
	api.PATCH("/products/:id", s.productHandler.HandleUpdateProduct)
	api.POST("/products/:id/reviews/import", s.productHandler.HandleMergeReviews)
	api.GET("/products/:id/link", s.productHandler.HandleResolveLink)
}

// Catalog exposes the catalog service for tests and CLIs.
func (s *Service) Catalog() *catalog.Service {
	return s.catalog
}
