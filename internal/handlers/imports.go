package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/gearshelf/gearshelf/internal/importer"
	"github.com/gearshelf/gearshelf/internal/locale"
)

// ImportHandler exposes the ingestion pipeline: product import through a
// caller-selected source adapter and review import through a
// caller-selected extraction strategy. Strategies are never composed
// automatically.
type ImportHandler struct {
	page     *importer.PageAdapter
	provider *importer.ProviderClient
}

func NewImportHandler(page *importer.PageAdapter, provider *importer.ProviderClient) *ImportHandler {
	return &ImportHandler{page: page, provider: provider}
}

type importProductRequest struct {
	URL     string `json:"url"`
	Adapter string `json:"adapter"`
}

type importReviewsRequest struct {
	URL      string `json:"url"`
	Locale   string `json:"locale"`
	MaxCount int    `json:"max_count"`
	Strategy string `json:"strategy"`
}

type importErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleImportProduct runs one source adapter against a URL and returns
// the normalized extract. Nothing is persisted here; creation is a
// separate call.
func (h *ImportHandler) HandleImportProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req importProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	var adapter importer.SourceAdapter
	switch req.Adapter {
	case "", "page":
		adapter = h.page
	case "provider":
		adapter = h.provider
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown adapter: "+req.Adapter)
	}

	extract, err := adapter.FetchProduct(ctx, req.URL)
	if err != nil {
		slog.Error("product import failed", "error", err, "url", req.URL, "adapter", adapter.Name())
		return importError(c, err)
	}

	slog.Info("product imported", "url", req.URL, "adapter", adapter.Name(), "title", extract.Title)
	return c.JSON(http.StatusOK, extract)
}

// HandleImportReviews runs one review extraction strategy against a URL.
// Nothing found is an empty list, never an error.
func (h *ImportHandler) HandleImportReviews(c echo.Context) error {
	ctx := c.Request().Context()

	var req importReviewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	// The provider response carries no locale, so the API strategy stamps
	// whatever the caller targets; default to the URL's marketplace.
	targetLocale := req.Locale
	if targetLocale == "" {
		targetLocale = locale.Classify(hostOf(req.URL)).Locale
	}

	var (
		reviews []importer.RawReview
		err     error
	)
	switch req.Strategy {
	case "", "api":
		reviews, err = h.provider.FetchReviews(ctx, req.URL, targetLocale, req.MaxCount)
	case "structured":
		reviews, err = h.page.FetchStructuredReviews(ctx, req.URL)
	case "dom":
		reviews, err = h.page.FetchDOMReviews(ctx, req.URL)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown strategy: "+req.Strategy)
	}
	if err != nil {
		slog.Error("review import failed", "error", err, "url", req.URL, "strategy", req.Strategy)
		return importError(c, err)
	}

	if req.MaxCount > 0 && len(reviews) > req.MaxCount {
		reviews = reviews[:req.MaxCount]
	}
	if reviews == nil {
		reviews = []importer.RawReview{}
	}

	slog.Info("reviews imported", "url", req.URL, "strategy", req.Strategy, "count", len(reviews))
	return c.JSON(http.StatusOK, map[string]any{"reviews": reviews})
}

// importError maps the pipeline error taxonomy onto tagged JSON
// responses so a caller can tell "switch adapters" apart from "fix your
// configuration".
func importError(c echo.Context, err error) error {
	kind := importer.ErrorKind(err)

	status := http.StatusBadGateway
	switch kind {
	case "upstream-empty":
		status = http.StatusUnprocessableEntity
	case "config-missing":
		status = http.StatusInternalServerError
	}

	return c.JSON(status, importErrorResponse{Error: kind, Message: err.Error()})
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
