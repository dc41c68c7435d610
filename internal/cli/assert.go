package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/csvtypes/internal/pipeline"
)

// newAssertCmd represents the assert command
func (a *app) newAssertCmd() *cobra.Command {
	var (
		tf     tableFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "assert <types> [file]",
		Short: "Check every column against an expected type",
		Long: `Assert reads a table from file (or stdin) and checks column i against the
i-th type of the comma separated <types> list. Rows holding values that do
not match are printed as row:column[:column...], rows and columns counted
from 0 (the header row, if any, is not counted).

By default a row whose failing cells are not adjacent in discovery order is
reported once per run of cells; --group-by-row reports each row exactly once.

Example:
  csvtypes assert int,string,float data.csv --header
  cat data.csv | csvtypes assert "int, int" -m --strict`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssert(cmd, args, &tf, strict)
		},
	}

	addTableFlags(cmd, &tf)
	cmd.Flags().BoolVar(&tf.groupByRow, "group-by-row", false, "report each non-conforming row exactly once")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 3 when any row does not match")
	return cmd
}

func (a *app) runAssert(cmd *cobra.Command, args []string, tf *tableFlags, strict bool) error {
	env, err := a.prepare(cmd, tf)
	if err != nil {
		return err
	}

	in, source, err := pipeline.OpenInput(inputPath(args, 1), a.stdin)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	report, err := env.pipeline.Assert(cmd.Context(), in, source, pipeline.ParseTypeNames(args[0]))
	if err != nil {
		return err
	}
	env.logger.Debug("assert complete", "source", source, "records", len(report.Mismatches), "grouping", report.Grouping)

	if err := env.renderer.RenderAssert(report); err != nil {
		return err
	}
	if strict && !report.Matched {
		return &ExitError{Code: ExitMismatches}
	}
	return nil
}
