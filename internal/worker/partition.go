package worker

import "github.com/ppiankov/csvtypes/internal/model"

// Span is one contiguous range [Start, End) of items assigned to a worker.
type Span struct {
	Index int // partition number, 0-based
	Start int
	End   int
}

// Len returns the number of items in the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Global translates an index local to the span into an index of the full
// sequence. This only holds because spans are contiguous; a different
// chunking scheme has to change Spans and Global together.
func (s Span) Global(local int) int {
	return s.Start + local
}

// Spans splits n items into exactly workers contiguous spans. Span i holds
// n/workers items plus one more when i < n%workers, so the first n%workers
// spans are one larger than the rest and trailing spans may be empty.
func Spans(n, workers int) ([]Span, error) {
	if workers < 1 {
		return nil, model.ErrThreadCount
	}

	spans := make([]Span, workers)
	base, extra := n/workers, n%workers
	end := 0
	for i := range spans {
		start := end
		end += base
		if i < extra {
			end++
		}
		spans[i] = Span{Index: i, Start: start, End: end}
	}
	return spans, nil
}

// Split slices items along spans. The returned groups share the backing
// array of items and must only be read.
func Split[T any](items []T, spans []Span) [][]T {
	groups := make([][]T, len(spans))
	for i, s := range spans {
		groups[i] = items[s.Start:s.End:s.End]
	}
	return groups
}
