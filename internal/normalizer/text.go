// Package normalizer turns loosely structured ranking tables into validated leaderboard payloads.
package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	headerNoisePattern = regexp.MustCompile(`[^a-z0-9#]+`)
	rankNumberPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// CollapseWhitespace replaces runs of whitespace with a single space and trims the ends.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeHeaderLabel lower-cases a header and keeps only [a-z0-9#] words.
// Only used to compare headers, never for data values.
func NormalizeHeaderLabel(text string) string {
	return CollapseWhitespace(headerNoisePattern.ReplaceAllString(strings.ToLower(text), " "))
}

// ParseRank extracts the first number in raw and truncates it, so "1 (tie)",
// "3rd" and "12." resolve to 1, 3 and 12.
func ParseRank(raw string) (int, bool) {
	match := rankNumberPattern.FindString(raw)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || value > math.MaxInt32 {
		return 0, false
	}

	return int(value), true
}

// ParseScore parses a score written with either a decimal point or a decimal comma.
func ParseScore(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}
