package model

import "log/slog"

// GroupingMode selects how per-cell mismatches are folded into records.
type GroupingMode int

const (
	// GroupContiguous starts a new record whenever the row index changes
	// from the previous mismatch in discovery order. A row whose mismatches
	// are not adjacent in that order yields several records.
	GroupContiguous GroupingMode = iota
	// GroupByRow emits exactly one record per row, rows and columns ascending.
	GroupByRow
)

// String returns the config name of the mode
func (m GroupingMode) String() string {
	switch m {
	case GroupByRow:
		return "row"
	default:
		return "contiguous"
	}
}

// Options controls a single match or assert call
type Options struct {
	HasHeaders bool
	Workers    int
	Grouping   GroupingMode
	Logger     *slog.Logger
}

// DefaultOptions returns options for a headerless, single-worker call
func DefaultOptions() Options {
	return Options{
		Workers:  1,
		Grouping: GroupContiguous,
	}
}

// Validate checks the options before any parsing or matching work starts.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return ErrThreadCount
	}
	return nil
}

// Log returns the configured logger, falling back to slog.Default.
func (o Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
