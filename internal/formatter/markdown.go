// Package formatter renders leaderboards and markdown tables with aligned columns.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"rankings/internal/models"
	"rankings/pkg/utils"
)

// MaxLinkWidth is the rune length after which preview links are cut with "...".
const MaxLinkWidth = 60

var payloadColumns = []string{"Rank", "School", "Program", "Country", "City", "Score", "Link"}

// FormatPayload renders payload as a markdown preview: a heading, the source
// line and one aligned table row per entry.
func FormatPayload(payload *models.LeaderboardPayload) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s %d\n\n", payload.Category, payload.Year)
	fmt.Fprintf(&sb, "Source: %s (%s)", payload.Source, payload.SourceURL)

	if region := models.Deref(payload.Region); region != "" {
		fmt.Fprintf(&sb, ", region %s", region)
	}

	fmt.Fprintf(&sb, ", scraped %s\n\n", payload.ScrapedAt().Format(models.ScrapedAtLayout))

	table := [][]string{payloadColumns, separatorRow(len(payloadColumns))}
	helper := utils.NewStringHelper()

	for _, entry := range payload.Entries {
		score := ""
		if entry.Score != nil {
			score = strconv.FormatFloat(*entry.Score, 'f', -1, 64)
		}

		table = append(table, []string{
			strconv.Itoa(entry.Rank),
			cell(entry.SchoolName),
			cell(models.Deref(entry.ProgramName)),
			cell(models.Deref(entry.Country)),
			cell(models.Deref(entry.City)),
			score,
			helper.TruncateString(cell(models.Deref(entry.Link)), MaxLinkWidth),
		})
	}

	sb.WriteString(strings.Join(alignTable(table, 1), "\n"))
	sb.WriteString("\n")

	return sb.String()
}

// cell keeps pipes and line breaks from splitting a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "/")

	return strings.Join(strings.Fields(s), " ")
}

func separatorRow(n int) []string {
	row := make([]string, n)
	for i := range row {
		row[i] = "---"
	}

	return row
}

// FormatMarkdown re-aligns every pipe table in content and leaves other lines untouched.
func FormatMarkdown(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

func processTable(rows []string) []string {
	// A table needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		parts := strings.Split(strings.TrimSpace(row), "|")
		parts = parts[1 : len(parts)-1]

		cells := make([]string, len(parts))
		for i, p := range parts {
			cells[i] = strings.TrimSpace(p)
		}

		table = append(table, cells)
	}

	separatorRowIdx := -1
	if isSeparator(table[1]) {
		separatorRowIdx = 1
	}

	return alignTable(table, separatorRowIdx)
}

func isSeparator(row []string) bool {
	for _, cell := range row {
		trim := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if trim != "" {
			return false
		}
	}

	return true
}

// alignTable pads every cell to its column's display width. The row at
// separatorRowIdx (-1 for none) is redrawn as dashes.
func alignTable(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, content := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(content))
		}
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], 3)
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
