package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

// HTTPClient fetches marketplace pages with browser-identifying headers
// and an explicit timeout. Failed requests are not retried; a failed
// import is re-invoked wholesale by the caller.
type HTTPClient struct {
	client     *http.Client
	userAgents []string
}

// NewHTTPClient creates an HTTP client with the given per-request timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgents: []string{
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
	}
}

// Get performs a single GET request and returns the response body.
// Any failure is reported as a NetworkError.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}

// ResolveFinalURL follows redirects to find the URL a listing actually
// lives at, using a lightweight HEAD probe first and a full GET when the
// probe fails. The result is used only for fetching — the stored link
// always stays the original input so tracking parameters survive.
// On any failure the original URL is returned unchanged.
func (c *HTTPClient) ResolveFinalURL(ctx context.Context, url string) string {
	if final, ok := c.probe(ctx, http.MethodHead, url); ok {
		return final
	}

	slog.Debug("HEAD probe failed, falling back to GET", "url", url)
	if final, ok := c.probe(ctx, http.MethodGet, url); ok {
		return final
	}

	return url
}

func (c *HTTPClient) probe(ctx context.Context, method, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return "", false
	}

	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return "", false
	}

	return resp.Request.URL.String(), true
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
}

func (c *HTTPClient) randomUserAgent() string {
	//nolint:gosec // math/rand is fine for user-agent rotation, not security-sensitive
	return c.userAgents[rand.Intn(len(c.userAgents))]
}
