package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/csvtypes/internal/match"
	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/registry"
	"github.com/ppiankov/csvtypes/internal/tokenize"
	"github.com/ppiankov/csvtypes/internal/validate"
)

// ErrInvalidSeparator is returned for separators that are not a single
// character or that collide with the quote or row terminator.
var ErrInvalidSeparator = errors.New("the separator must be a single character other than '\"' and newline")

// Pipeline orchestrates reading, tokenizing and matching or asserting a table
type Pipeline struct {
	fetcher   *Fetcher
	registry  *registry.Registry
	separator rune
	options   model.Options
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration and type
// registry
func NewPipeline(cfg *model.Config, reg *registry.Registry, logger *slog.Logger) (*Pipeline, error) {
	sep, err := ParseSeparator(cfg.Input.Separator)
	if err != nil {
		return nil, err
	}

	grouping, ok := model.ParseGrouping(cfg.Output.Grouping)
	if !ok {
		return nil, fmt.Errorf("unknown grouping mode %q", cfg.Output.Grouping)
	}

	fetcher, err := NewFetcher(cfg.Input.Encoding)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		fetcher:   fetcher,
		registry:  reg,
		separator: sep,
		options: model.Options{
			HasHeaders: cfg.Input.Header,
			Workers:    cfg.Concurrency.Workers,
			Grouping:   grouping,
			Logger:     logger,
		},
		config: cfg,
	}, nil
}

// ParseSeparator accepts a single character; "\t" and "tab" select a tab.
func ParseSeparator(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidSeparator
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\n' || r == utf8.RuneError {
		return 0, ErrInvalidSeparator
	}
	return r, nil
}

// ParseTypeNames splits a comma separated list of expected type names
func ParseTypeNames(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Options returns the per-call options derived from the configuration
func (p *Pipeline) Options() model.Options {
	return p.options
}

func (p *Pipeline) read(ctx context.Context, r io.Reader, source string) (model.Row, model.Document, error) {
	res, err := p.fetcher.Fetch(ctx, r, source)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	headers, doc := tokenize.SplitHeader(tokenize.Tokenize(res.Text, p.separator), p.options.HasHeaders)
	p.options.Log().Debug("input parsed", "source", res.Source, "bytes", res.Bytes, "rows", len(doc), "columns", doc.Width())
	return headers, doc, nil
}

// Match reads a table from r and reports the types matching each column.
func (p *Pipeline) Match(ctx context.Context, r io.Reader, source string) (*model.MatchReport, error) {
	// 1. Reject a bad worker count before touching the input
	if err := p.options.Validate(); err != nil {
		return nil, err
	}

	// 2. Read and tokenize
	headers, doc, err := p.read(ctx, r, source)
	if err != nil {
		return nil, err
	}

	// 3. Match columns concurrently
	types, err := match.MatchTypes(ctx, doc, p.registry, p.options)
	if err != nil {
		return nil, err
	}

	return model.NewMatchReport(headers, match.TypeNames(types)), nil
}

// Assert reads a table from r and checks each column against the type named
// at the same position in names.
func (p *Pipeline) Assert(ctx context.Context, r io.Reader, source string, names []string) (*model.AssertReport, error) {
	// 1. Reject a bad worker count before touching the input
	if err := p.options.Validate(); err != nil {
		return nil, err
	}

	// 2. Resolve expected types
	expected, err := p.registry.Resolve(names)
	if err != nil {
		return nil, err
	}

	// 3. Read and tokenize
	_, doc, err := p.read(ctx, r, source)
	if err != nil {
		return nil, err
	}

	// 4. Assert rows concurrently
	records, err := validate.AssertColumns(ctx, doc, expected, p.options)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.MismatchRecord{}
	}

	return &model.AssertReport{
		Expected:   registry.Names(expected),
		Grouping:   p.options.Grouping.String(),
		Matched:    len(records) == 0,
		Mismatches: records,
	}, nil
}
