package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/figures/internal/bench/executor"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), describeStrategies())
			return nil
		},
	}
}

// describeStrategies lists every executor type in run order.
func describeStrategies() string {
	var b strings.Builder
	for i, t := range executor.GetSupportedExecutors() {
		d := executor.GetExecutorDescription(t)
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s)\n", d.Type, d.Label)
		fmt.Fprintf(&b, "  %s\n", d.Description)
		for _, uc := range d.UseCases {
			fmt.Fprintf(&b, "  - %s\n", uc)
		}
	}
	return b.String()
}
