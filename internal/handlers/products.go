package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gearshelf/gearshelf/internal/catalog"
	"github.com/gearshelf/gearshelf/internal/importer"
)

// ProductHandler exposes catalog reads and writes. All identity
// resolution and replacement semantics live in the catalog service; the
// handler only shapes requests and responses.
type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(service *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: service}
}

// HandleCreateProduct creates a catalog product with pipeline-resolved
// unique title and slug.
func (h *ProductHandler) HandleCreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var in catalog.CreateProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if in.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	product, err := h.catalog.Create(ctx, in)
	if err != nil {
		if errors.Is(err, catalog.ErrUniquenessExhausted) {
			return echo.NewHTTPError(http.StatusConflict, "could not resolve a unique title/slug")
		}
		slog.Error("failed to create product", "error", err, "title", in.Title)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create product")
	}

	slog.Info("product created", "product_id", product.ID, "title", product.Title, "slug", product.Slug)
	return c.JSON(http.StatusCreated, product)
}

// HandleGetProduct returns one product with links and reviews.
func (h *ProductHandler) HandleGetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		slog.Error("failed to load product", "error", err, "product_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load product")
	}

	return c.JSON(http.StatusOK, product)
}

// HandleListProducts returns a page of products.
func (h *ProductHandler) HandleListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)

	products, err := h.catalog.List(ctx, limit, offset)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}

	return c.JSON(http.StatusOK, map[string]any{"products": products})
}

// HandleUpdateProduct applies a partial update. Links follow the
// keep-on-empty rule and reviews the clear-on-explicit-empty rule; both
// are enforced by the catalog service.
func (h *ProductHandler) HandleUpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var in catalog.UpdateProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	in.ID = c.Param("id")

	product, err := h.catalog.Update(ctx, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, catalog.ErrUniquenessExhausted) {
			return echo.NewHTTPError(http.StatusConflict, "could not resolve a unique title/slug")
		}
		slog.Error("failed to update product", "error", err, "product_id", in.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update product")
	}

	slog.Info("product updated", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

type mergeReviewsRequest struct {
	Reviews []importer.RawReview `json:"reviews"`
}

// HandleMergeReviews merges a freshly extracted review batch into a
// product through the deduplicator. Calling it twice with the same batch
// adds nothing the second time.
func (h *ProductHandler) HandleMergeReviews(c echo.Context) error {
	ctx := c.Request().Context()
	productID := c.Param("id")

	var req mergeReviewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	added, err := h.catalog.MergeReviews(ctx, productID, req.Reviews)
	if err != nil {
		slog.Error("failed to merge reviews", "error", err, "product_id", productID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to merge reviews")
	}

	slog.Info("reviews merged", "product_id", productID, "received", len(req.Reviews), "added", added)
	return c.JSON(http.StatusOK, map[string]any{"added": added})
}

// HandleResolveLink picks the outbound affiliate URL for the viewer's
// locale. An empty url means the product has no links at all.
func (h *ProductHandler) HandleResolveLink(c echo.Context) error {
	ctx := c.Request().Context()

	url, err := h.catalog.ResolveLink(ctx, c.Param("id"), c.QueryParam("locale"))
	if err != nil {
		slog.Error("failed to resolve link", "error", err, "product_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve link")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
