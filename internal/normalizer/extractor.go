package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"rankings/internal/logger"
	"rankings/internal/models"
)

// ErrNoEntriesParsed is returned when no data row survives extraction.
var ErrNoEntriesParsed = errors.New("No entries parsed")

// ExtractStats counts what happened to the data rows of a table.
type ExtractStats struct {
	Rows      int
	Blank     int
	Discarded int
	Entries   int
}

// Extractor converts table rows into ranking entries.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor creates an extractor that logs discarded rows at debug level.
func NewExtractor(log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Extractor{log: log}
}

// Extract walks every data row of table using headerMap.
// Blank rows are skipped, rows without a usable rank or school are discarded,
// and an empty result is an error.
func (e *Extractor) Extract(table Table, headerMap HeaderMap) ([]models.RankingEntry, ExtractStats, error) {
	var stats ExtractStats

	if err := headerMap.RequireCore(); err != nil {
		return nil, stats, err
	}

	columns := headerMap.Columns()
	entries := make([]models.RankingEntry, 0, table.NumRows())

	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		stats.Rows++

		if isBlankRow(row) {
			stats.Blank++

			continue
		}

		entry, reason := e.buildEntry(row, headerMap, columns)
		if reason != "" {
			stats.Discarded++
			e.log.Debug("discarding row", "row", i, "reason", reason)

			continue
		}

		entries = append(entries, entry)
	}

	stats.Entries = len(entries)

	if len(entries) == 0 {
		return nil, stats, fmt.Errorf("%w from %d rows", ErrNoEntriesParsed, stats.Rows)
	}

	return entries, stats, nil
}

// buildEntry returns the entry for row, or a non-empty reason when the row is not data.
func (e *Extractor) buildEntry(row Row, headerMap HeaderMap, columns []int) (models.RankingEntry, string) {
	values := make(map[Field]string, len(columns))
	schoolLink := ""

	for _, col := range columns {
		field := headerMap[col]
		text := CollapseWhitespace(row.Text(col))

		switch field {
		case FieldLink:
			if link := strings.TrimSpace(row.Link(col)); link != "" {
				text = link
			}
		case FieldSchoolName:
			link := strings.TrimSpace(row.Link(col))
			if schoolLink == "" {
				schoolLink = link
			}

			if anchors, ok := row.(AnchorRow); ok && link != "" {
				if label := CollapseWhitespace(anchors.AnchorText(col)); label != "" {
					text = label
				}
			}
		}

		// Duplicate mappings keep the leftmost non-blank value.
		if values[field] == "" {
			values[field] = text
		}
	}

	rank, ok := ParseRank(values[FieldRank])
	if !ok {
		return models.RankingEntry{}, fmt.Sprintf("no rank in %q", values[FieldRank])
	}

	school := values[FieldSchoolName]
	if school == "" {
		return models.RankingEntry{}, "empty school name"
	}

	entry := models.RankingEntry{
		Rank:        rank,
		SchoolName:  school,
		ProgramName: models.StringPtr(values[FieldProgramName]),
		Country:     models.StringPtr(values[FieldCountry]),
		City:        models.StringPtr(values[FieldCity]),
		Notes:       models.StringPtr(values[FieldNotes]),
		Metadata:    map[string]any{},
	}

	if score, ok := ParseScore(values[FieldScore]); ok {
		entry.Score = &score
	}

	link := values[FieldLink]
	if link == "" {
		link = schoolLink
	}

	entry.Link = models.StringPtr(link)

	return entry, ""
}

func isBlankRow(row Row) bool {
	for col := 0; col < row.Len(); col++ {
		if strings.TrimSpace(row.Text(col)) != "" {
			return false
		}
	}

	return true
}
