package model

import (
	"strconv"
	"strings"
)

// MismatchRecord lists the columns whose value at Row failed the expected type.
type MismatchRecord struct {
	Row     int   `json:"row" yaml:"row"`
	Columns []int `json:"columns" yaml:"columns"`
}

// String serializes the record as row:col:col:...
func (r MismatchRecord) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Row))
	for _, col := range r.Columns {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(col))
	}
	return b.String()
}
