package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/csvtypes/internal/model"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// fallbackWidth pads header cells that have no column of types below them
const fallbackWidth = 10

// Renderer writes match and assert results. Results go to out, status lines
// to status.
type Renderer struct {
	out             io.Writer
	status          io.Writer
	machineReadable bool
	format          string
}

// NewRenderer creates a renderer for the given output settings
func NewRenderer(out, status io.Writer, cfg model.OutputConfig) (*Renderer, error) {
	format := strings.ToLower(cfg.Format)
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
	return &Renderer{
		out:             out,
		status:          status,
		machineReadable: cfg.MachineReadable,
		format:          format,
	}, nil
}

// RenderMatch writes a match report
func (r *Renderer) RenderMatch(report *model.MatchReport) error {
	switch {
	case r.format == FormatJSON:
		return r.RenderJSON(report)
	case r.format == FormatYAML:
		return r.RenderYAML(report)
	case r.machineReadable:
		return r.matchMachine(report)
	default:
		return r.matchTable(report)
	}
}

// RenderAssert writes an assert report
func (r *Renderer) RenderAssert(report *model.AssertReport) error {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(report)
	case FormatYAML:
		return r.RenderYAML(report)
	}

	if len(report.Mismatches) == 0 {
		if !r.machineReadable {
			_, err := fmt.Fprintln(r.status, "All rows matched")
			return err
		}
		return nil
	}

	if !r.machineReadable {
		if _, err := fmt.Fprintln(r.status, "These rows did not match: "); err != nil {
			return err
		}
	}
	for _, rec := range report.Mismatches {
		if _, err := fmt.Fprintln(r.out, rec.String()); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes v as indented JSON
func (r *Renderer) RenderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = r.out.Write(data)
	return err
}

// RenderYAML writes v as YAML
func (r *Renderer) RenderYAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}

// matchMachine prints one line per column, every type name followed by a comma
func (r *Renderer) matchMachine(report *model.MatchReport) error {
	var b strings.Builder
	for _, col := range report.Columns {
		for _, name := range col.Types {
			b.WriteString(name)
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

// matchTable prints the types of each column stacked vertically, right
// aligned, with an optional header row.
func (r *Renderer) matchTable(report *model.MatchReport) error {
	widths := make([]int, len(report.Columns))
	maxRows := 0
	for i, col := range report.Columns {
		maxRows = max(maxRows, len(col.Types))
		for _, name := range col.Types {
			widths[i] = max(widths[i], utf8.RuneCountInString(name))
		}
	}

	width := func(i int) int {
		if i < len(widths) {
			return widths[i]
		}
		return fallbackWidth
	}

	var b strings.Builder
	if len(report.Headers) > 0 {
		for i, h := range report.Headers {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(h))
			}
		}

		total := 0
		for i, h := range report.Headers {
			fmt.Fprintf(&b, "| %*s ", width(i), h)
			total += 3 + width(i)
		}
		b.WriteString("|\n")
		b.WriteString(strings.Repeat("=", total+1))
		b.WriteByte('\n')
	}

	for row := 0; row < maxRows; row++ {
		for i, col := range report.Columns {
			name := ""
			if row < len(col.Types) {
				name = col.Types[row]
			}
			fmt.Fprintf(&b, "| %*s ", width(i), name)
		}
		b.WriteString("|\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}
