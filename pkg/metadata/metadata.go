// Package metadata derives ranking source metadata from export filenames.
package metadata

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Source is the publisher of every catalogued export.
	Source = "Financial Times"
	// DefaultSourceURL is used when no page is known for a (pattern, year) pair.
	DefaultSourceURL = "https://rankings.ft.com"
)

// Filename inference errors.
var (
	ErrCannotInferYear     = errors.New("Cannot infer year from filename")
	ErrCannotInferCategory = errors.New("Cannot infer master_type/category from filename")
)

// Metadata describes one ranking export.
type Metadata struct {
	Pattern    string
	MasterType string
	Category   string
	SourceURL  string
	Year       int
}

type filenamePattern struct {
	pattern    string
	masterType string
	category   string
}

// filenamePatterns is ordered: the first substring match wins, so more specific patterns come first.
var filenamePatterns = []filenamePattern{
	{"masters-in-management", "mim", "Master in Management"},
	{"masters-of-management", "mim", "Master in Management"},
	{"masters-in-finance-pre-experience", "finance", "Master in Finance (pre-experience)"},
	{"masters-in-finance-post-experience", "finance", "Master in Finance (post-experience)"},
	{"masters-in-finance", "finance", "Master in Finance"},
	{"european-business-school-rankings", "business_school", "European Business School Rankings"},
	{"executive-education-custom", "executive_education", "Executive Education Custom"},
	{"executive-education-open", "executive_education", "Executive Education Open"},
	{"executive-mba", "emba", "Executive MBA"},
	{"emba", "emba", "Executive MBA"},
	{"online-mba", "mba", "Online MBA"},
	{"mba", "mba", "MBA"},
}

type urlKey struct {
	pattern string
	year    int
}

var sourceURLs = map[urlKey]string{
	{"masters-in-management", 2021}:              "https://rankings.ft.com/rankings/5/masters-in-management-2021",
	{"masters-in-management", 2022}:              "https://rankings.ft.com/rankings/2875/masters-of-management-2022",
	{"masters-in-management", 2023}:              "https://rankings.ft.com/rankings/2948/masters-in-management-2023",
	{"masters-in-management", 2024}:              "https://rankings.ft.com/rankings/2961/masters-in-management-2024",
	{"masters-in-management", 2025}:              "https://rankings.ft.com/rankings/3004/masters-in-management-2025",
	{"masters-in-finance-pre-experience", 2023}:  "https://rankings.ft.com/rankings/2946/masters-in-finance-pre-experience-2023",
	{"masters-in-finance-pre-experience", 2024}:  "https://rankings.ft.com/rankings/2958/masters-in-finance-2024",
	{"masters-in-finance-pre-experience", 2025}:  "https://rankings.ft.com/rankings/3003/masters-in-finance-pre-experience-2025",
	{"masters-in-finance-post-experience", 2022}: "https://rankings.ft.com/rankings/2870/masters-in-finance-post-experience-2022",
	{"masters-in-finance-post-experience", 2024}: "https://rankings.ft.com/rankings/2959/masters-in-finance-post-experience-2024",
	{"masters-in-finance", 2024}:                 "https://rankings.ft.com/rankings/2958/masters-in-finance-2024",
	{"executive-education-open", 2024}:           "https://rankings.ft.com/rankings/2956/executive-education-open-2024",
	{"executive-education-open", 2025}:           "https://rankings.ft.com/rankings/3001/executive-education-open-2025",
	{"executive-education-custom", 2023}:         "https://rankings.ft.com/rankings/2945/executive-education-custom-2023",
	{"executive-education-custom", 2024}:         "https://rankings.ft.com/rankings/2955/executive-education-custom-2024",
	{"executive-education-custom", 2025}:         "https://rankings.ft.com/rankings/3000/executive-education-custom-2025",
	{"online-mba", 2024}:                         "https://rankings.ft.com/rankings/2953/online-mba-2024",
	{"online-mba", 2025}:                         "https://rankings.ft.com/rankings/2998/online-mba-2025",
	{"mba", 2025}:                                "https://rankings.ft.com/rankings/2997/mba-2025",
	{"emba", 2025}:                               "https://rankings.ft.com/rankings/3005/emba-2025",
	{"european-business-school-rankings", 2021}:  "https://rankings.ft.com/rankings/2869/european-business-school-rankings-2021",
	{"european-business-school-rankings", 2022}:  "https://rankings.ft.com/rankings/2943/european-business-school-rankings-2022",
	{"european-business-school-rankings", 2023}:  "https://rankings.ft.com/rankings/2954/european-business-school-rankings-2023",
	{"european-business-school-rankings", 2024}:  "https://rankings.ft.com/rankings/2999/european-business-school-rankings-2024",
	{"european-business-school-rankings", 2025}:  "https://rankings.ft.com/rankings/3042/european-business-school-rankings-2025",
}

var yearRegex = regexp.MustCompile(`(20\d{2})`)

// InferFromFilename reads the year and ranking category out of an export path.
func InferFromFilename(path string) (*Metadata, error) {
	name := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	match := yearRegex.FindStringSubmatch(stem)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrCannotInferYear, name)
	}

	year, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCannotInferYear, name)
	}

	for _, p := range filenamePatterns {
		if !strings.Contains(stem, p.pattern) {
			continue
		}

		return &Metadata{
			Pattern:    p.pattern,
			MasterType: p.masterType,
			Category:   p.category,
			Year:       year,
			SourceURL:  SourceURLFor(p.pattern, year),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrCannotInferCategory, name)
}

// SourceURLFor returns the ranking page of pattern in year, or DefaultSourceURL.
func SourceURLFor(pattern string, year int) string {
	if url, ok := sourceURLs[urlKey{pattern, year}]; ok {
		return url
	}

	return DefaultSourceURL
}

// Patterns lists the catalogued filename patterns in match order.
func Patterns() []string {
	out := make([]string, len(filenamePatterns))
	for i, p := range filenamePatterns {
		out[i] = p.pattern
	}

	return out
}
