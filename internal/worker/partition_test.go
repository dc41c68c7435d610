package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/csvtypes/internal/model"
)

func spanSizes(spans []Span) []int {
	sizes := make([]int, len(spans))
	for i, s := range spans {
		sizes[i] = s.Len()
	}
	return sizes
}

func TestSpans_Sizes(t *testing.T) {
	tests := []struct {
		n, workers int
		want       []int
	}{
		{7, 3, []int{3, 2, 2}},
		{4, 4, []int{1, 1, 1, 1}},
		{4, 2, []int{2, 2}},
		{3, 2, []int{2, 1}},
		{3, 4, []int{1, 1, 1, 0}},
		{0, 3, []int{0, 0, 0}},
		{10, 1, []int{10}},
	}

	for _, tt := range tests {
		spans, err := Spans(tt.n, tt.workers)
		require.NoError(t, err)
		assert.Equal(t, tt.want, spanSizes(spans), "n=%d workers=%d", tt.n, tt.workers)
	}
}

func TestSpans_ContiguousAndNonIncreasing(t *testing.T) {
	for n := 0; n <= 25; n++ {
		for w := 1; w <= 8; w++ {
			spans, err := Spans(n, w)
			require.NoError(t, err)
			require.Len(t, spans, w)

			next := 0
			for i, s := range spans {
				assert.Equal(t, i, s.Index)
				assert.Equal(t, next, s.Start, "n=%d w=%d span=%d", n, w, i)
				next = s.End
				if i > 0 {
					assert.LessOrEqual(t, s.Len(), spans[i-1].Len())
				}
			}
			assert.Equal(t, n, next)
		}
	}
}

func TestSpans_ZeroWorkers(t *testing.T) {
	_, err := Spans(5, 0)
	assert.ErrorIs(t, err, model.ErrThreadCount)

	_, err = Spans(5, -2)
	assert.ErrorIs(t, err, model.ErrThreadCount)
}

func TestSplit_Reconstructs(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	spans, err := Spans(len(items), 3)
	require.NoError(t, err)

	groups := Split(items, spans)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "e"}, {"f", "g"}}, groups)

	var joined []string
	for _, g := range groups {
		joined = append(joined, g...)
	}
	assert.Equal(t, items, joined)
}

func TestSplit_MoreWorkersThanItems(t *testing.T) {
	items := []string{"a", "b", "c"}
	spans, _ := Spans(len(items), 4)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}, {}}, Split(items, spans))
}

func TestSpan_Global(t *testing.T) {
	spans, _ := Spans(7, 3)
	assert.Equal(t, 0, spans[0].Global(0))
	assert.Equal(t, 3, spans[1].Global(0))
	assert.Equal(t, 4, spans[1].Global(1))
	assert.Equal(t, 6, spans[2].Global(1))
}
