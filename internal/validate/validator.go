// Package validate asserts that every column of a document conforms to one
// expected type and reports the failing cells grouped by row.
package validate

import (
	"context"
	"log/slog"

	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/registry"
	"github.com/ppiankov/csvtypes/internal/tokenize"
	"github.com/ppiankov/csvtypes/internal/worker"
)

// Mismatch is one cell whose value failed its column's expected type.
// Column is always the table-wide column index.
type Mismatch struct {
	Row    int
	Column int
}

// columnCheck pairs a column with the type it is expected to have
type columnCheck struct {
	values   []string
	rows     []int
	expected registry.TypeDef
}

// Validator checks columns against expected types concurrently
type Validator struct {
	workers  int
	grouping model.GroupingMode
	logger   *slog.Logger
}

// NewValidator creates a validator from call options
func NewValidator(opts model.Options) *Validator {
	return &Validator{
		workers:  opts.Workers,
		grouping: opts.Grouping,
		logger:   opts.Log(),
	}
}

// Validate checks every cell of doc against the expected type of its column
// and returns the failing cells as records. expected must hold exactly one
// type per column; this is checked before any worker starts.
func (v *Validator) Validate(ctx context.Context, doc model.Document, expected []registry.TypeDef) ([]model.MismatchRecord, error) {
	cells, err := v.Mismatches(ctx, doc, expected)
	if err != nil {
		return nil, err
	}
	records := Aggregate(cells, v.grouping)
	v.logger.Debug("assertion finished", "mismatched_cells", len(cells), "records", len(records), "grouping", v.grouping.String())
	return records, nil
}

// Mismatches returns the failing cells in discovery order: partitions in
// order, then columns ascending, then rows ascending.
func (v *Validator) Mismatches(ctx context.Context, doc model.Document, expected []registry.TypeDef) ([]Mismatch, error) {
	if v.workers < 1 {
		return nil, model.ErrThreadCount
	}

	cols := tokenize.Columns(doc)
	if len(cols) != len(expected) {
		return nil, &model.ColumnCountError{Expected: len(expected), Actual: len(cols)}
	}

	checks := make([]columnCheck, len(cols))
	for i, col := range cols {
		checks[i] = columnCheck{values: col.Values, rows: col.Rows, expected: expected[i]}
	}

	v.logger.Debug("asserting columns", "columns", len(cols), "rows", len(doc), "workers", v.workers)
	processor := worker.NewBatchProcessor[columnCheck, Mismatch](v.workers, v.logger)
	return processor.Process(ctx, checks, checkPartition)
}

// checkPartition tests every cell of one span of columns. A column's
// position inside the span is local; span.Global turns it back into the
// table-wide index.
func checkPartition(ctx context.Context, span worker.Span, part []columnCheck) ([]Mismatch, error) {
	var found []Mismatch
	for local, check := range part {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		expected := check.expected
		for i, value := range check.values {
			if !expected.Match(value) {
				found = append(found, Mismatch{Row: check.rows[i], Column: span.Global(local)})
			}
		}
	}
	return found, nil
}

// AssertColumns checks doc against one expected type per column.
func AssertColumns(ctx context.Context, doc model.Document, expected []registry.TypeDef, opts model.Options) ([]model.MismatchRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return NewValidator(opts).Validate(ctx, doc, expected)
}

// AssertText tokenizes text, drops the header row when opts.HasHeaders is set
// and asserts the remaining columns. The worker count is checked before the
// text is parsed.
func AssertText(ctx context.Context, text string, sep rune, expected []registry.TypeDef, opts model.Options) ([]model.MismatchRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	_, doc := tokenize.SplitHeader(tokenize.Tokenize(text, sep), opts.HasHeaders)
	return AssertColumns(ctx, doc, expected, opts)
}
