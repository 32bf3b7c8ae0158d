package parsers

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"rankings/internal/normalizer"
)

// HTMLTable is the first header-bearing <table> of a static HTML document.
type HTMLTable struct {
	headers []string
	rows    []htmlRow
}

// htmlRow holds the <td>/<th> cells of one data row.
type htmlRow []*goquery.Selection

var (
	_ normalizer.Table     = (*HTMLTable)(nil)
	_ normalizer.AnchorRow = htmlRow(nil)
)

// ParseHTMLTable locates the ranking table in content.
// The chosen table is the first one containing a row of <th> cells; that row is
// the header and every later row with at least two cells and a leading <td> is data.
func ParseHTMLTable(content string) (*HTMLTable, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := goquery.NewDocumentFromNode(root)

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, ErrNoTable
	}

	var found *HTMLTable

	tables.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		found = tableFromSelection(table)

		return found == nil
	})

	if found == nil {
		return nil, ErrNoHeaderCells
	}

	return found, nil
}

// tableFromSelection returns nil when table has no header row.
func tableFromSelection(table *goquery.Selection) *HTMLTable {
	rows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})

	headerIdx := -1

	rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if tr.ChildrenFiltered("th").Length() > 0 {
			headerIdx = i

			return false
		}

		return true
	})

	if headerIdx == -1 {
		return nil
	}

	out := &HTMLTable{}

	rows.Eq(headerIdx).ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		out.headers = append(out.headers, cellText(cell))
	})

	rows.Slice(headerIdx+1, rows.Length()).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() < 2 || goquery.NodeName(cells.First()) == "th" {
			return
		}

		row := make(htmlRow, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cell)
		})

		out.rows = append(out.rows, row)
	})

	return out
}

// Headers implements normalizer.Table.
func (t *HTMLTable) Headers() []string { return t.headers }

// NumRows implements normalizer.Table.
func (t *HTMLTable) NumRows() int { return len(t.rows) }

// Row implements normalizer.Table.
func (t *HTMLTable) Row(i int) normalizer.Row { return t.rows[i] }

func (r htmlRow) Len() int { return len(r) }

func (r htmlRow) Text(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}

	return cellText(r[col])
}

// Link returns the href of the first anchor in the cell.
func (r htmlRow) Link(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}

	href, _ := r[col].Find("a[href]").First().Attr("href")

	return strings.TrimSpace(href)
}

// AnchorText implements normalizer.AnchorRow.
func (r htmlRow) AnchorText(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}

	anchor := r[col].Find("a[href]").First()
	if anchor.Length() == 0 {
		return ""
	}

	if label := cellText(anchor); label != "" {
		return label
	}

	href, _ := anchor.Attr("href")

	return strings.TrimSpace(href)
}

func cellText(cell *goquery.Selection) string {
	if len(cell.Nodes) == 0 {
		return ""
	}

	return nodeText(cell.Nodes[0])
}
