package model

// Row is one ordered sequence of cells. Rows of a Document may differ in length.
type Row []string

// Document is the tokenized table, in input order.
type Document []Row

// Column is the column-major view of one column index across a Document.
// Rows holds the document row index each value came from; for ragged
// documents a column only contains values from rows long enough to have it.
type Column struct {
	Index  int
	Values []string
	Rows   []int
}

// Width returns the number of columns of the document, i.e. the length of its
// longest row.
func (d Document) Width() int {
	width := 0
	for _, row := range d {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
