package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/figures/internal/bench/config"
	"github.com/wesleyorama2/figures/internal/bench/engine"
	"github.com/wesleyorama2/figures/internal/bench/output"
	"github.com/wesleyorama2/figures/internal/bench/report"
	"github.com/wesleyorama2/figures/internal/logging"
)

// progressInterval is how often the progress line is redrawn.
const progressInterval = 100 * time.Millisecond

func newRunCmd(opts *runOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark (same as running figures without a command)",
		Long: `Run the benchmark from flags or a configuration file.

Config file mode:
  figures run --config bench.yaml

Flags override the file:
  figures run --config bench.yaml --count 1000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", config.DefaultCount, "Number of shapes of each type")
	flags.Int64Var(&opts.seed, "seed", 0, "Generator seed (0 picks one from the clock)")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file (.yaml, .json or .toml)")
	flags.StringSliceVar(&opts.strategies, "strategies", nil, "Comma-separated strategies to run, by name or executor type")
	flags.StringVarP(&opts.output, "output", "o", "", "Write a JSON report to this file")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the timing lines")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

// loadConfig builds the run configuration from the config file, if any, and
// the flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.BenchConfig, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("count") || opts.configFile == "" {
		cfg.Count = opts.count
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if err := cfg.Select(opts.strategies); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBenchmark runs every configured strategy and prints the results.
func runBenchmark(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), opts.verbose)
	console := output.NewConsole(output.ConsoleConfig{
		Writer:  cmd.OutOrStdout(),
		Quiet:   opts.quiet,
		NoColor: opts.noColor,
	})

	engineOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithStrategyHook(console.PrintStrategy),
	}
	if console.IsTTY() && !opts.quiet {
		engineOpts = append(engineOpts, engine.WithProgress(progressInterval, console.Progress))
	}
	if len(opts.workerCommand) > 0 {
		engineOpts = append(engineOpts, engine.WithWorkerCommand(opts.workerCommand...))
	}
	env := opts.workerEnv
	if opts.verbose {
		env = append(env, logging.LevelEnv+"=debug")
	}
	if len(env) > 0 {
		engineOpts = append(engineOpts, engine.WithWorkerEnv(env...))
	}

	eng, err := engine.NewEngine(cfg, engineOpts...)
	if err != nil {
		return err
	}

	console.PrintHeader(cfg.Count)
	result, err := eng.Run(cmd.Context())
	if err != nil {
		return err
	}
	console.PrintSummary(result)

	if opts.output != "" {
		if err := report.GenerateJSON(result, opts.output); err != nil {
			return err
		}
		log.WithField("path", opts.output).Info("report written")
	}
	return nil
}
