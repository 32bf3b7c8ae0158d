package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"rankings/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetch defaults.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 10240 // KB
)

// Scraper fetches ranking pages. One attempt per call, no retry.
type Scraper struct {
	client    *http.Client
	headers   *utils.HTTPHelper
	maxBodyKb int
}

// NewScraper creates a new scraper instance with default config.
func NewScraper() *Scraper {
	return NewScraperWithConfig(DefaultTimeout, "", DefaultMaxBodySize)
}

// NewScraperWithConfig creates a scraper with a client timeout, User-Agent and body cap in KB.
// Zero values select the defaults.
func NewScraperWithConfig(timeout time.Duration, userAgent string, maxBodyKb int) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if maxBodyKb <= 0 {
		maxBodyKb = DefaultMaxBodySize
	}

	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		headers:   utils.NewHTTPHelper(userAgent),
		maxBodyKb: maxBodyKb,
	}
}

// Fetch GETs url and returns the body as text.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	content, _, _, err := s.FetchWithMetrics(ctx, url)

	return content, err
}

// FetchWithMetrics returns (content, statusCode, duration, error).
func (s *Scraper) FetchWithMetrics(ctx context.Context, url string) (string, int, time.Duration, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = s.headers.BuildHeaders(nil)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, time.Since(startTime), fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", resp.StatusCode, time.Since(startTime), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	// maxBodyKb is in KB, convert to bytes
	limit := int64(s.maxBodyKb) * 1024

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", resp.StatusCode, time.Since(startTime), fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), resp.StatusCode, time.Since(startTime), nil
}
