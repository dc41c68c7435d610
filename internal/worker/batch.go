package worker

import (
	"context"
	"log/slog"
)

// PartitionFunc processes the items of one span sequentially and returns one
// result slice for the span.
type PartitionFunc[T, R any] func(ctx context.Context, span Span, items []T) ([]R, error)

// BatchProcessor fans a sequence out over a fixed number of workers and
// reassembles the results in input order.
type BatchProcessor[T, R any] struct {
	workers int
	logger  *slog.Logger
}

// NewBatchProcessor creates a batch processor. workers is validated by
// Process, not coerced.
func NewBatchProcessor[T, R any](workers int, logger *slog.Logger) *BatchProcessor[T, R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor[T, R]{
		workers: workers,
		logger:  logger,
	}
}

// Process partitions items into exactly one contiguous span per worker, runs
// fn once per span in parallel and concatenates the results in span order.
// Output order never depends on which worker finishes first. If any worker
// fails the whole call fails and nothing is returned.
func (b *BatchProcessor[T, R]) Process(ctx context.Context, items []T, fn PartitionFunc[T, R]) ([]R, error) {
	spans, err := Spans(len(items), b.workers)
	if err != nil {
		return nil, err
	}
	groups := Split(items, spans)

	results := make([][]R, len(spans))
	g := NewGroup(ctx, len(spans))
	for i, span := range spans {
		b.logger.Debug("starting worker", "partition", span.Index, "start", span.Start, "end", span.End)
		g.Go(span.Index, func(ctx context.Context) error {
			out, err := fn(ctx, span, groups[i])
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.Debug("worker failed", "error", err)
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]R, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}

	b.logger.Debug("all workers joined", "workers", len(spans), "results", total)
	return merged, nil
}
