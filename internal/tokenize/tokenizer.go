// Package tokenize turns delimited text into rows of cells and derives the
// column-major view used by matching and assertion.
package tokenize

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/csvtypes/internal/model"
)

const quote = '"'

// Tokenize splits text into rows of cells.
//
// A '"' toggles the quoted state. Outside quotes sep ends a field and '\n'
// ends a row; inside quotes both are kept literally. A field whose first
// character is '"' loses its enclosing quotes and has every "" collapsed to
// a single quote. Other fields are kept verbatim, quotes included.
//
// The last field and the last row are always emitted, even when empty, so
// "a,\n" yields [["a", ""], [""]]. Bytes that are not valid UTF-8 are
// dropped from the cell content.
func Tokenize(text string, sep rune) model.Document {
	var (
		doc      model.Document
		row      model.Row
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		row = append(row, unquote(field.String()))
		field.Reset()
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		switch {
		case r == utf8.RuneError && size == 1:
			// invalid byte
		case r == quote:
			inQuotes = !inQuotes
			field.WriteRune(r)
		case r == sep && !inQuotes:
			flushField()
		case r == '\n' && !inQuotes:
			flushField()
			doc = append(doc, row)
			row = nil
		default:
			field.WriteRune(r)
		}
	}

	flushField()
	return append(doc, row)
}

// unquote strips the enclosing quotes of a field that starts with one and
// collapses doubled quotes. A missing closing quote is tolerated.
func unquote(raw string) string {
	if !strings.HasPrefix(raw, `"`) {
		return raw
	}
	body := strings.TrimSuffix(raw[1:], `"`)
	return strings.ReplaceAll(body, `""`, `"`)
}

// SplitHeader removes the first row when hasHeaders is set and returns it
// separately. The document is returned untouched otherwise.
func SplitHeader(doc model.Document, hasHeaders bool) (model.Row, model.Document) {
	if !hasHeaders || len(doc) == 0 {
		return nil, doc
	}
	return doc[0], doc[1:]
}

// Columns transposes the document into one Column per column index. Ragged
// rows are not padded.
func Columns(doc model.Document) []model.Column {
	cols := make([]model.Column, doc.Width())
	for i := range cols {
		cols[i].Index = i
	}
	for rowIdx, row := range doc {
		for colIdx, value := range row {
			cols[colIdx].Values = append(cols[colIdx].Values, value)
			cols[colIdx].Rows = append(cols[colIdx].Rows, rowIdx)
		}
	}
	return cols
}
