package match

import (
	"context"

	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/registry"
	"github.com/ppiankov/csvtypes/internal/tokenize"
	"github.com/ppiankov/csvtypes/internal/worker"
)

// MatchTypes returns, per column of doc, the registry types matching every
// value of that column. Columns are spread over opts.Workers workers; the
// result is in column order regardless of which worker finishes first.
func MatchTypes(ctx context.Context, doc model.Document, reg *registry.Registry, opts model.Options) ([][]registry.TypeDef, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.Log()
	cols := tokenize.Columns(doc)
	log.Debug("matching columns", "columns", len(cols), "rows", len(doc), "types", reg.Len(), "workers", opts.Workers)

	processor := worker.NewBatchProcessor[model.Column, []registry.TypeDef](opts.Workers, log)
	return processor.Process(ctx, cols, func(ctx context.Context, span worker.Span, part []model.Column) ([][]registry.TypeDef, error) {
		defs := reg.Ordered()
		out := make([][]registry.TypeDef, 0, len(part))
		for _, col := range part {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, MatchColumn(col.Values, defs))
		}
		return out, nil
	})
}

// GetTypes tokenizes text, removes the header row when opts.HasHeaders is
// set and matches the remaining columns. The worker count is checked before
// the text is parsed.
func GetTypes(ctx context.Context, text string, sep rune, reg *registry.Registry, opts model.Options) (model.Row, [][]registry.TypeDef, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	headers, doc := tokenize.SplitHeader(tokenize.Tokenize(text, sep), opts.HasHeaders)
	types, err := MatchTypes(ctx, doc, reg, opts)
	if err != nil {
		return nil, nil, err
	}
	return headers, types, nil
}

// TypeNames converts per-column matches into per-column type names
func TypeNames(types [][]registry.TypeDef) [][]string {
	names := make([][]string, len(types))
	for i, defs := range types {
		names[i] = registry.Names(defs)
	}
	return names
}
