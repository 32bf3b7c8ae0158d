// Package utils provides common utility functions.
package utils

import "net/http"

// Default request header values for ranking pages.
const (
	DefaultUserAgent = "rankings-scraper/1.0 (+https://github.com)"
	DefaultAccept    = "text/html,application/xhtml+xml"
)

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct {
	userAgent string
}

// NewHTTPHelper creates a new HTTP helper. An empty userAgent selects DefaultUserAgent.
func NewHTTPHelper(userAgent string) *HTTPHelper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &HTTPHelper{userAgent: userAgent}
}

// UserAgent returns the User-Agent sent with every request.
func (h *HTTPHelper) UserAgent() string {
	return h.userAgent
}

// BuildHeaders creates HTTP headers with defaults. Custom headers replace defaults.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", h.userAgent)
	headers.Set("Accept", DefaultAccept)

	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}
