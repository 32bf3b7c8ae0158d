package parsers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"rankings/internal/models"
)

// writeWorkbook saves rows to Sheet1 starting at A1 and returns the file path.
func writeWorkbook(t *testing.T, rows [][]any, links map[string]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}

		values := row
		if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	for cell, link := range links {
		if err := f.SetCellHyperLink("Sheet1", cell, link, "External"); err != nil {
			t.Fatalf("SetCellHyperLink failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	return path
}

func TestOpenWorkbook_ParsesRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Rank", "School", "Program", "Country", "Score"},
		{1, "HEC Paris", "MiM", "France", "97.3"},
		{2, "ESCP", "MiM", "France", "95,1"},
	}, map[string]string{"B2": "https://www.hec.edu"})

	wb, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if wb.Sheet() != "Sheet1" {
		t.Errorf("Sheet = %q, want Sheet1", wb.Sheet())
	}

	if wb.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", wb.NumRows())
	}

	entries := extract(t, wb)

	if entries[0].Rank != 1 || entries[0].SchoolName != "HEC Paris" {
		t.Errorf("entries[0] = %d %q", entries[0].Rank, entries[0].SchoolName)
	}

	if models.Deref(entries[0].Link) != "https://www.hec.edu" {
		t.Errorf("entries[0].Link = %v, want school hyperlink", entries[0].Link)
	}

	if entries[1].Score == nil || *entries[1].Score != 95.1 {
		t.Errorf("entries[1].Score = %v, want 95.1", entries[1].Score)
	}

	if entries[1].Link != nil {
		t.Errorf("entries[1].Link = %v, want nil", *entries[1].Link)
	}
}

func TestOpenWorkbook_SkipsTitleRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"FT Masters in Management 2024"},
		{"Position", "Institution", "Website"},
		{"1 (tie)", "School A", "https://a.example"},
		{"2", "School B", nil},
	}, map[string]string{"C4": "https://b.example"})

	wb, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if got := wb.Headers(); len(got) != 3 || got[0] != "Position" {
		t.Fatalf("Headers = %v", got)
	}

	entries := extract(t, wb)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = [%d %d], want [1 2]", entries[0].Rank, entries[1].Rank)
	}

	if models.Deref(entries[0].Link) != "https://a.example" {
		t.Errorf("entries[0].Link = %v, want cell text", entries[0].Link)
	}

	if models.Deref(entries[1].Link) != "https://b.example" {
		t.Errorf("entries[1].Link = %v, want cell hyperlink", entries[1].Link)
	}
}

func TestOpenWorkbook_NoHeaderRow(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"just a title"}, {"another"}}, nil)

	_, err := OpenWorkbook(path)
	if !errors.Is(err, ErrNoHeaderRow) {
		t.Errorf("OpenWorkbook error = %v, want ErrNoHeaderRow", err)
	}
}

func TestOpenWorkbook_MissingFile(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Rank", "School"},
		{3, "IE Business School"},
	}, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	wb, err := ReadWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	defer wb.Close()

	row := wb.Row(0)
	if row.Text(0) != "3" || row.Text(1) != "IE Business School" {
		t.Errorf("row = %q %q", row.Text(0), row.Text(1))
	}

	if row.Link(1) != "" || row.Text(7) != "" || row.Link(-1) != "" {
		t.Error("expected empty link and out-of-range text")
	}
}
