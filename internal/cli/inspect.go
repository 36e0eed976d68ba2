package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/figures/internal/bench/report"
	"github.com/wesleyorama2/figures/pkg/jsonpath"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <report.json> [jsonpath...]",
		Short: "Validate a saved report and print values from it",
		Long: `Validate a report written with --output and print the values at the given
JSONPath expressions. Without a path the whole report is printed.

  figures inspect report.json '$.strategies[0].durationSeconds'
  figures inspect report.json '$.seed' '$.verified'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _, err := report.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			paths := args[1:]
			if len(paths) == 0 {
				_, err := out.Write(raw)
				return err
			}
			for _, path := range paths {
				value, err := jsonpath.Extract(raw, path)
				if err != nil {
					return err
				}
				if len(paths) > 1 {
					fmt.Fprintf(out, "%s: %s\n", path, value)
				} else {
					fmt.Fprintln(out, value)
				}
			}
			return nil
		},
	}
}
