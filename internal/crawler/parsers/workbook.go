package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"rankings/internal/normalizer"
)

// Workbook exposes the active sheet of a spreadsheet as a ranking table.
// Cell values are the cached results, never the formulas that produced them.
type Workbook struct {
	file      *excelize.File
	sheet     string
	headers   []string
	rows      [][]string
	headerRow int // 1-based sheet row of the header
}

var _ normalizer.Table = (*Workbook)(nil)

// OpenWorkbook opens an .xlsx file. Callers must Close it.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	wb, err := newWorkbook(f)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return wb, nil
}

// ReadWorkbook reads an .xlsx document from r. Callers must Close it.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	wb, err := newWorkbook(f)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return wb, nil
}

func newWorkbook(f *excelize.File) (*Workbook, error) {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx == -1 {
		return nil, ErrNoHeaderRow
	}

	return &Workbook{
		file:      f,
		sheet:     sheet,
		headers:   rows[headerIdx],
		rows:      rows[headerIdx+1:],
		headerRow: headerIdx + 1,
	}, nil
}

// findHeaderRow returns the index of the first row with at least two non-empty cells.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		filled := 0

		for _, value := range row {
			if value != "" {
				filled++
			}
		}

		if filled >= 2 {
			return i
		}
	}

	return -1
}

// Sheet returns the name of the sheet being read.
func (w *Workbook) Sheet() string { return w.sheet }

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Headers implements normalizer.Table.
func (w *Workbook) Headers() []string { return w.headers }

// NumRows implements normalizer.Table.
func (w *Workbook) NumRows() int { return len(w.rows) }

// Row implements normalizer.Table.
func (w *Workbook) Row(i int) normalizer.Row {
	return workbookRow{wb: w, values: w.rows[i], sheetRow: w.headerRow + 1 + i}
}

type workbookRow struct {
	wb       *Workbook
	values   []string
	sheetRow int
}

func (r workbookRow) Len() int { return len(r.values) }

func (r workbookRow) Text(col int) string {
	if col < 0 || col >= len(r.values) {
		return ""
	}

	return r.values[col]
}

// Link looks up the cell hyperlink on demand; most cells have none.
func (r workbookRow) Link(col int) string {
	if col < 0 {
		return ""
	}

	cell, err := excelize.CoordinatesToCellName(col+1, r.sheetRow)
	if err != nil {
		return ""
	}

	ok, target, err := r.wb.file.GetCellHyperLink(r.wb.sheet, cell)
	if err != nil || !ok {
		return ""
	}

	return strings.TrimSpace(target)
}
