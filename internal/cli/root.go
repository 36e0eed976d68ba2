// Package cli implements the figures command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/figures/internal/bench/output"
)

var version = "0.1.0"

// runOptions holds the flags shared by the root and run commands.
type runOptions struct {
	count      int
	seed       int64
	configFile string
	strategies []string
	output     string
	quiet      bool
	noColor    bool
	verbose    bool

	// workerCommand overrides the worker process command line.
	workerCommand []string
	workerEnv     []string
}

// NewRootCmd builds the figures command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&runOptions{})
}

func newRootCmd(opts *runOptions) *cobra.Command {
	root := &cobra.Command{
		Use:     "figures",
		Short:   "Benchmark shape area calculations under four scheduling strategies",
		Version: version,
		Long: `figures generates random trapezoids, rectangles and squares and computes
their areas with regular loops, a goroutine pool, a pool of worker processes
and a mix of both. Every strategy gets the same inputs; the results are
checked against each other and the timings are printed.

Run all four strategies on 10000 shapes of each type:
  figures

Pick strategies and keep a report:
  figures --count 50000 --strategies sequential,mixed --output report.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, opts)
		},
	}

	addRunFlags(root, opts)

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newStrategiesCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newWorkerCmd())
	return root
}

// Execute runs the command line and reports a failure on stderr.
// This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		output.NewConsole(output.ConsoleConfig{Writer: root.ErrOrStderr()}).PrintError(err)
		return err
	}
	return nil
}
