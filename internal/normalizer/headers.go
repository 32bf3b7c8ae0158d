package normalizer

import (
	"errors"
	"sort"
	"strings"
)

// Field is a canonical leaderboard column.
type Field string

// Canonical fields, in the order headers are matched against them.
const (
	FieldRank        Field = "rank"
	FieldSchoolName  Field = "school_name"
	FieldProgramName Field = "program_name"
	FieldCountry     Field = "country"
	FieldCity        Field = "city"
	FieldScore       Field = "score"
	FieldNotes       Field = "notes"
	FieldLink        Field = "link"
)

// ErrMissingCoreColumns is returned when a table has no rank or no school column.
var ErrMissingCoreColumns = errors.New("Table must contain rank and school columns")

type fieldAliases struct {
	field   Field
	aliases []string
}

// headerAliases is matched in order; the first field with a matching alias wins.
var headerAliases = []fieldAliases{
	{FieldRank, []string{"rank", "position", "#"}},
	{FieldSchoolName, []string{"school", "university", "institution", "business school"}},
	{FieldProgramName, []string{"program", "programme", "degree", "master", "course", "programme name"}},
	{FieldCountry, []string{"country", "location"}},
	{FieldCity, []string{"city", "campus"}},
	{FieldScore, []string{"score", "points", "index"}},
	{FieldNotes, []string{"notes", "comment", "remarks"}},
	{FieldLink, []string{"link", "url", "website"}},
}

// normalizedAliases mirrors headerAliases with every alias already normalized.
var normalizedAliases = func() []fieldAliases {
	out := make([]fieldAliases, len(headerAliases))
	for i, entry := range headerAliases {
		normalized := make([]string, len(entry.aliases))
		for j, alias := range entry.aliases {
			normalized[j] = NormalizeHeaderLabel(alias)
		}

		out[i] = fieldAliases{field: entry.field, aliases: normalized}
	}

	return out
}()

// CanonicalFields returns the canonical fields in matching order.
func CanonicalFields() []Field {
	fields := make([]Field, len(headerAliases))
	for i, entry := range headerAliases {
		fields[i] = entry.field
	}

	return fields
}

// MatchHeader maps a raw header label to its canonical field.
// A header matches an alias when its normalized form equals it or starts with it,
// so "School Name (2024)" still resolves to school_name.
func MatchHeader(header string) (Field, bool) {
	normalized := NormalizeHeaderLabel(header)
	if normalized == "" {
		return "", false
	}

	for _, entry := range normalizedAliases {
		for _, alias := range entry.aliases {
			if normalized == alias || strings.HasPrefix(normalized, alias) {
				return entry.field, true
			}
		}
	}

	return "", false
}

// HeaderMap maps column indexes to canonical fields. Unmapped columns are absent.
type HeaderMap map[int]Field

// ResolveHeaders builds the column map for a header row.
func ResolveHeaders(headers []string) HeaderMap {
	mapping := make(HeaderMap, len(headers))

	for idx, header := range headers {
		if field, ok := MatchHeader(header); ok {
			mapping[idx] = field
		}
	}

	return mapping
}

// Has reports whether any column maps to field.
func (m HeaderMap) Has(field Field) bool {
	_, ok := m.Column(field)

	return ok
}

// Column returns the first column mapped to field.
func (m HeaderMap) Column(field Field) (int, bool) {
	found := -1

	for idx, f := range m {
		if f == field && (found == -1 || idx < found) {
			found = idx
		}
	}

	return found, found != -1
}

// Columns returns the mapped column indexes in ascending order.
func (m HeaderMap) Columns() []int {
	cols := make([]int, 0, len(m))
	for idx := range m {
		cols = append(cols, idx)
	}

	sort.Ints(cols)

	return cols
}

// RequireCore fails unless both rank and school_name are mapped.
func (m HeaderMap) RequireCore() error {
	if !m.Has(FieldRank) || !m.Has(FieldSchoolName) {
		return ErrMissingCoreColumns
	}

	return nil
}
