package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/figures/internal/bench/worker"
)

// newWorkerCmd serves the worker protocol. The process strategies start the
// executable with this command; it is not meant to be run by hand.
func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "worker",
		Short:  "Serve area requests on stdin and stdout",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if code := worker.Main(); code != 0 {
				return fmt.Errorf("worker exited with status %d", code)
			}
			return nil
		},
	}
}
