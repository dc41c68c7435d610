package model

// MatchReport is the result of match mode
type MatchReport struct {
	Headers []string      `json:"headers,omitempty" yaml:"headers,omitempty"` // Header row, when the input has one
	Columns []ColumnTypes `json:"columns" yaml:"columns"`                     // One entry per column, in column order
}

// ColumnTypes lists the type names that match every value of one column
type ColumnTypes struct {
	Index  int      `json:"index" yaml:"index"`
	Header string   `json:"header,omitempty" yaml:"header,omitempty"`
	Types  []string `json:"types" yaml:"types"` // Registry iteration order
}

// AssertReport is the result of assert mode
type AssertReport struct {
	Expected   []string         `json:"expected" yaml:"expected"`     // Expected type name per column
	Grouping   string           `json:"grouping" yaml:"grouping"`     // contiguous or row
	Matched    bool             `json:"matched" yaml:"matched"`       // True when no cell failed
	Mismatches []MismatchRecord `json:"mismatches" yaml:"mismatches"` // Discovery order
}

// NewMatchReport pairs per-column type names with optional headers.
func NewMatchReport(headers []string, types [][]string) *MatchReport {
	report := &MatchReport{
		Headers: headers,
		Columns: make([]ColumnTypes, len(types)),
	}
	for i, names := range types {
		col := ColumnTypes{Index: i, Types: names}
		if i < len(headers) {
			col.Header = headers[i]
		}
		if col.Types == nil {
			col.Types = []string{}
		}
		report.Columns[i] = col
	}
	return report
}
