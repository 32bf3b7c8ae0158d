// Package config loads scrape-job documents and runtime settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrConfigNotMapping = errors.New("Config must be a JSON object")
	ErrMissingFields    = errors.New("Missing required fields")
	ErrInvalidYearValue = errors.New("year must be an integer")
	ErrYearTooEarly     = errors.New("year must be >= 1900")
	ErrInvalidDocument  = errors.New("invalid config document")
)

// Job defaults.
const (
	DefaultAdapter    = "html-table"
	DefaultOutputPath = "ranking.json"
	MinYear           = 1900
)

// requiredFields are checked in this order and reported together.
var requiredFields = []string{"url", "master_type", "year", "source", "category"}

// ScrapeConfig describes a single ranking scrape.
type ScrapeConfig struct {
	Region     *string
	URL        string
	MasterType string
	Source     string
	Category   string
	Adapter    string
	OutputPath string
	Year       int
}

// LoadScrapeConfig reads a job document from path, or from stdin when path is "-".
func LoadScrapeConfig(path string) (*ScrapeConfig, error) {
	return loadScrapeConfig(path, os.Stdin)
}

func loadScrapeConfig(path string, stdin io.Reader) (*ScrapeConfig, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseScrapeConfig(data)
}

// ParseScrapeConfig decodes and normalizes a job document.
// YAML and JSON are both accepted; a document that fails to decode is repaired once.
func ParseScrapeConfig(data []byte) (*ScrapeConfig, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrConfigNotMapping
	}

	return NormalizeScrapeConfig(raw)
}

func decodeDocument(data []byte) (any, error) {
	var doc any

	yamlErr := yaml.Unmarshal(data, &doc)
	if yamlErr == nil {
		return doc, nil
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, yamlErr)
	}

	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return doc, nil
}

// NormalizeScrapeConfig validates raw keys, coerces the year and applies defaults.
func NormalizeScrapeConfig(raw map[string]any) (*ScrapeConfig, error) {
	var missing []string

	for _, key := range requiredFields {
		if isBlankValue(raw[key]) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	year, err := coerceYear(raw["year"])
	if err != nil {
		return nil, err
	}

	if year < MinYear {
		return nil, ErrYearTooEarly
	}

	cfg := &ScrapeConfig{
		URL:        stringValue(raw["url"]),
		MasterType: stringValue(raw["master_type"]),
		Source:     stringValue(raw["source"]),
		Category:   stringValue(raw["category"]),
		Year:       year,
		Adapter:    stringValue(raw["adapter"]),
		OutputPath: stringValue(raw["output_path"]),
	}

	if region := stringValue(raw["region"]); region != "" {
		cfg.Region = &region
	}

	if cfg.Adapter == "" {
		cfg.Adapter = DefaultAdapter
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}

	return cfg, nil
}

func isBlankValue(v any) bool {
	if v == nil {
		return true
	}

	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	return false
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func coerceYear(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		if val > math.MaxInt32 {
			return 0, ErrInvalidYearValue
		}

		return int(val), nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || math.Abs(val) > math.MaxInt32 {
			return 0, ErrInvalidYearValue
		}

		return int(val), nil
	case string:
		year, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, ErrInvalidYearValue
		}

		return year, nil
	}

	return 0, ErrInvalidYearValue
}

// String returns a string representation of the config.
func (c *ScrapeConfig) String() string {
	return fmt.Sprintf(
		"ScrapeConfig{URL: %s, MasterType: %s, Year: %d, Adapter: %s, Output: %s}",
		c.URL,
		c.MasterType,
		c.Year,
		c.Adapter,
		c.OutputPath,
	)
}
