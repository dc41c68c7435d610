package validate

import (
	"sort"

	"github.com/ppiankov/csvtypes/internal/model"
)

// Aggregate folds cell mismatches into per-row records.
//
// GroupContiguous scans cells in the order given and opens a new record
// whenever the row differs from the previous cell's row, so one row can
// appear in several records. GroupByRow emits one record per row, rows and
// columns ascending.
func Aggregate(cells []Mismatch, mode model.GroupingMode) []model.MismatchRecord {
	if mode == model.GroupByRow {
		return groupByRow(cells)
	}
	return groupContiguous(cells)
}

func groupContiguous(cells []Mismatch) []model.MismatchRecord {
	records := []model.MismatchRecord{}
	for _, c := range cells {
		if n := len(records); n > 0 && records[n-1].Row == c.Row {
			records[n-1].Columns = append(records[n-1].Columns, c.Column)
			continue
		}
		records = append(records, model.MismatchRecord{Row: c.Row, Columns: []int{c.Column}})
	}
	return records
}

func groupByRow(cells []Mismatch) []model.MismatchRecord {
	byRow := make(map[int][]int)
	for _, c := range cells {
		byRow[c.Row] = append(byRow[c.Row], c.Column)
	}

	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	records := make([]model.MismatchRecord, 0, len(rows))
	for _, row := range rows {
		cols := byRow[row]
		sort.Ints(cols)
		records = append(records, model.MismatchRecord{Row: row, Columns: cols})
	}
	return records
}
