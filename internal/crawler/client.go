// Package crawler fetches ranking pages and converts spreadsheet exports into leaderboard payloads.
package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rankings/internal/config"
	"rankings/internal/crawler/parsers"
	"rankings/internal/logger"
	"rankings/internal/models"
	"rankings/internal/normalizer"
)

// ErrUnknownAdapter indicates a job names an adapter that is not registered.
var ErrUnknownAdapter = errors.New("Unknown adapter")

// Adapter turns fetched page content into a ranking table.
type Adapter func(content string) (normalizer.Table, error)

var adapters = map[string]Adapter{
	config.DefaultAdapter: func(content string) (normalizer.Table, error) {
		return parsers.ParseHTMLTable(content)
	},
}

// AdapterNames lists the registered adapters in sorted order.
func AdapterNames() []string {
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// LookupAdapter returns the adapter registered under name.
func LookupAdapter(name string) (Adapter, error) {
	adapter, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'. Available: %s", ErrUnknownAdapter, name, strings.Join(AdapterNames(), ", "))
	}

	return adapter, nil
}

// Client fetches ranking pages and normalizes them into payloads.
type Client struct {
	scraper   *Scraper
	processor *normalizer.Processor
	log       *logger.Logger
}

// NewClient creates a new crawler client with default dependencies.
func NewClient(log *logger.Logger) *Client {
	return NewClientWithDeps(NewScraper(), nil, log)
}

// NewClientWithDeps creates a new crawler client with injected dependencies.
// A nil processor is built from log.
func NewClientWithDeps(scraper *Scraper, processor *normalizer.Processor, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if processor == nil {
		processor = normalizer.NewProcessor(log)
	}

	return &Client{
		scraper:   scraper,
		processor: processor,
		log:       log,
	}
}

// Scrape fetches job.URL and normalizes the ranking table found there.
func (c *Client) Scrape(ctx context.Context, job *config.ScrapeConfig) (*models.LeaderboardPayload, error) {
	adapter, err := LookupAdapter(job.Adapter)
	if err != nil {
		return nil, err
	}

	content, status, duration, err := c.scraper.FetchWithMetrics(ctx, job.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", job.URL, err)
	}

	c.log.Info("fetched page", "url", job.URL, "status", status, "bytes", len(content), "duration", duration, "user_agent", c.scraper.headers.UserAgent())

	return c.normalize(adapter, job, content)
}

// ScrapeHTML normalizes content as if it had been fetched from job.URL.
func (c *Client) ScrapeHTML(ctx context.Context, job *config.ScrapeConfig, content string) (*models.LeaderboardPayload, error) {
	adapter, err := LookupAdapter(job.Adapter)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.normalize(adapter, job, content)
}

func (c *Client) normalize(adapter Adapter, job *config.ScrapeConfig, content string) (*models.LeaderboardPayload, error) {
	table, err := adapter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", job.URL, err)
	}

	payload, err := c.processor.Process(SourceInfoFor(job), table)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", job.URL, err)
	}

	return payload, nil
}

// SourceInfoFor maps a scrape job onto payload source info.
func SourceInfoFor(job *config.ScrapeConfig) models.SourceInfo {
	return models.SourceInfo{
		MasterType: job.MasterType,
		Source:     job.Source,
		Category:   job.Category,
		Year:       job.Year,
		SourceURL:  job.URL,
		Region:     job.Region,
	}
}

// SavePayloadJSON writes payload to outputPath as indented JSON, creating parent directories.
func SavePayloadJSON(payload *models.LeaderboardPayload, outputPath string) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
