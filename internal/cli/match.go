package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/csvtypes/internal/pipeline"
)

// newMatchCmd represents the match command
func (a *app) newMatchCmd() *cobra.Command {
	var tf tableFlags

	cmd := &cobra.Command{
		Use:   "match [file]",
		Short: "List the types that match every value of each column",
		Long: `Match reads a table from file (or stdin) and prints, for every column, the
types whose pattern matches all of the column's values. Types are listed
in registry order: the built-in types first, then configured types.

Example:
  csvtypes match data.csv --header
  cat data.csv | csvtypes match -m --max-threads 4
  csvtypes match data.tsv --separator tab -c mytypes`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMatch(cmd, args, &tf)
		},
	}

	addTableFlags(cmd, &tf)
	return cmd
}

func (a *app) runMatch(cmd *cobra.Command, args []string, tf *tableFlags) error {
	env, err := a.prepare(cmd, tf)
	if err != nil {
		return err
	}

	in, source, err := pipeline.OpenInput(inputPath(args, 0), a.stdin)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	report, err := env.pipeline.Match(cmd.Context(), in, source)
	if err != nil {
		return err
	}
	env.logger.Debug("match complete", "source", source, "columns", len(report.Columns))

	return env.renderer.RenderMatch(report)
}
