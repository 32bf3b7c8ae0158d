package normalizer

// Table is the cell-access capability every source adapter provides.
// Headers are the raw labels of the header row; rows are the data rows after it.
type Table interface {
	Headers() []string
	NumRows() int
	Row(i int) Row
}

// Row gives access to one data row. Columns outside the row yield "".
type Row interface {
	Len() int
	// Text returns the visible text of the cell.
	Text(col int) string
	// Link returns the hyperlink target embedded in the cell, if any.
	Link(col int) string
}

// AnchorRow is implemented by rows whose linked cells carry a label apart
// from the surrounding cell text.
type AnchorRow interface {
	// AnchorText returns the label of the cell's first link, falling back to
	// its target. Cells without a link yield "".
	AnchorText(col int) string
}

// Cell is a single in-memory cell.
type Cell struct {
	Text string
	Link string
}

// StaticTable is an in-memory Table.
type StaticTable struct {
	Header []string
	Data   [][]Cell
}

// NewStaticTable builds a table from plain text rows.
func NewStaticTable(headers []string, rows [][]string) *StaticTable {
	data := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, text := range row {
			cells[j] = Cell{Text: text}
		}

		data[i] = cells
	}

	return &StaticTable{Header: headers, Data: data}
}

// Headers implements Table.
func (t *StaticTable) Headers() []string { return t.Header }

// NumRows implements Table.
func (t *StaticTable) NumRows() int { return len(t.Data) }

// Row implements Table.
func (t *StaticTable) Row(i int) Row { return staticRow(t.Data[i]) }

type staticRow []Cell

func (r staticRow) Len() int { return len(r) }

func (r staticRow) Text(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}

	return r[col].Text
}

func (r staticRow) Link(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}

	return r[col].Link
}
