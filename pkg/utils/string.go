package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparatorPattern = regexp.MustCompile(`[^a-z0-9]+`)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// Slugify lower-cases value, spells out "&", strips diacritics and joins the
// remaining alphanumeric runs with "-". An empty result becomes "ranking".
func (s *StringHelper) Slugify(value string) string {
	lowered := strings.ReplaceAll(strings.ToLower(value), "&", "and")

	ascii, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), lowered)
	if err != nil {
		ascii = lowered
	}

	slug := strings.Trim(slugSeparatorPattern.ReplaceAllString(ascii, "-"), "-")
	if slug == "" {
		return "ranking"
	}

	return slug
}

// TruncateString truncates str to maxLength runes, appending "...".
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	r := []rune(str)
	if len(r) <= maxLength {
		return str
	}

	return string(r[:maxLength]) + "..."
}
