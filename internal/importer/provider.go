package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gearshelf/gearshelf/internal/locale"
)

// maxProviderReviews bounds the caller-supplied review count.
const maxProviderReviews = 50

// defaultProviderReviews is used when the caller does not ask for a count.
const defaultProviderReviews = 20

// ProviderClient imports listings through a third-party structured-data
// API instead of fetching the page directly. The provider is called with
// the original URL so affiliate parameters are preserved end to end.
type ProviderClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProviderClient creates a provider-backed adapter. An empty API key is
// allowed here; every call checks it and reports a configuration error,
// since key absence must surface immediately rather than degrade.
func NewProviderClient(baseURL, apiKey string, timeout time.Duration) *ProviderClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ProviderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *ProviderClient) Name() string {
	return "provider"
}

// providerProduct mirrors the provider's product payload. Only the fields
// the pipeline maps are declared.
type providerProduct struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	FeatureBullets []string `json:"feature_bullets"`
	MainImage      struct {
		Link string `json:"link"`
	} `json:"main_image"`
	BuyboxWinner struct {
		Price struct {
			Raw      string  `json:"raw"`
			Value    float64 `json:"value"`
			Currency string  `json:"currency"`
		} `json:"price"`
	} `json:"buybox_winner"`
}

type providerReview struct {
	Body    string  `json:"body"`
	Rating  float64 `json:"rating"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
	Date struct {
		UTC string `json:"utc"`
	} `json:"date"`
}

type providerResponse struct {
	Product *providerProduct `json:"product"`
	Reviews []providerReview `json:"reviews"`
}

// FetchProduct maps the provider's response onto a ProductExtract.
// Locale/store classification uses the original URL's hostname, never a
// provider-normalized one. An upstream success carrying no usable product
// payload is reported distinctly from a network failure so the caller can
// suggest the page adapter instead.
func (p *ProviderClient) FetchProduct(ctx context.Context, productURL string) (*ProductExtract, error) {
	if p.apiKey == "" {
		return nil, ErrConfigMissing
	}

	var payload providerResponse
	if err := p.request(ctx, "product", productURL, nil, &payload); err != nil {
		return nil, err
	}

	product := payload.Product
	if product == nil || (product.Title == "" && product.Description == "" && product.MainImage.Link == "") {
		return nil, fmt.Errorf("provider product for %s: %w", productURL, ErrUpstreamEmpty)
	}

	info := locale.Classify(hostnameOf(productURL))

	extract := &ProductExtract{
		Title:       product.Title,
		SlugBasis:   product.Title,
		Price:       providerPrice(product),
		ImageURL:    product.MainImage.Link,
		Description: product.Description,
		PrimaryLink: ExtractedLink{
			URL:        productURL,
			Locale:     info.Locale,
			StoreLabel: info.StoreLabel,
		},
	}

	// 1–2 feature bullets make the short summary
	bullets := product.FeatureBullets
	if len(bullets) > 2 {
		bullets = bullets[:2]
	}
	for i, b := range bullets {
		if i > 0 {
			extract.Summary += " · "
		}
		extract.Summary += collapseWhitespace(b)
	}

	return extract, nil
}

// FetchReviews pulls reviews through the provider API. The upstream
// response carries no locale, so every review is stamped with the
// caller-supplied target locale. The batch is fuzzy-deduplicated before
// returning, so one call never yields internal duplicates.
func (p *ProviderClient) FetchReviews(ctx context.Context, productURL, targetLocale string, maxCount int) ([]RawReview, error) {
	if p.apiKey == "" {
		return nil, ErrConfigMissing
	}

	if maxCount <= 0 {
		maxCount = defaultProviderReviews
	}
	if maxCount > maxProviderReviews {
		maxCount = maxProviderReviews
	}

	var payload providerResponse
	extra := url.Values{"max_page": {strconv.Itoa(1)}}
	if err := p.request(ctx, "reviews", productURL, extra, &payload); err != nil {
		return nil, err
	}

	reviews := make([]RawReview, 0, len(payload.Reviews))
	for _, item := range payload.Reviews {
		content := collapseWhitespace(item.Body)
		if content == "" {
			continue
		}

		author := item.Profile.Name
		if author == "" {
			author = anonymousAuthor
		}

		reviews = append(reviews, RawReview{
			Author:          author,
			Rating:          ClampRating(item.Rating),
			Content:         content,
			Locale:          targetLocale,
			SourceTimestamp: parseSourceDate(item.Date.UTC),
		})
	}

	reviews = FilterNew(nil, reviews)
	if len(reviews) > maxCount {
		reviews = reviews[:maxCount]
	}

	return reviews, nil
}

func (p *ProviderClient) request(ctx context.Context, requestType, productURL string, extra url.Values, out *providerResponse) error {
	query := url.Values{
		"api_key": {p.apiKey},
		"type":    {requestType},
		"url":     {productURL},
	}
	for key, values := range extra {
		query[key] = values
	}

	endpoint := p.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{URL: p.baseURL, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &NetworkError{URL: p.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: p.baseURL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: p.baseURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode provider response: %w", ErrUpstreamEmpty)
	}

	return nil
}

// providerPrice picks the best available price representation: the
// source-formatted raw string when present, a value+currency rendering
// otherwise.
func providerPrice(product *providerProduct) string {
	price := product.BuyboxWinner.Price
	if price.Raw != "" {
		return price.Raw
	}
	if price.Value != 0 {
		formatted := strconv.FormatFloat(price.Value, 'f', 2, 64)
		if price.Currency != "" {
			return formatted + " " + price.Currency
		}
		return formatted
	}
	return ""
}
