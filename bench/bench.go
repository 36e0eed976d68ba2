package bench

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/config"
	"github.com/wesleyorama2/figures/internal/bench/engine"
	"github.com/wesleyorama2/figures/internal/bench/report"
	"github.com/wesleyorama2/figures/internal/bench/worker"
)

type (
	// Config is the configuration of a run.
	Config = config.BenchConfig

	// StrategyConfig configures one strategy of a run.
	StrategyConfig = config.StrategyConfig

	// Result contains the results of a run.
	Result = engine.BenchResult

	// StrategyResult contains the results of one strategy.
	StrategyResult = engine.StrategyResult

	// MismatchError reports a strategy whose areas differ from the first
	// strategy's.
	MismatchError = engine.MismatchError
)

// DefaultConfig returns a configuration running all four strategies on
// 10000 shapes of each kind.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML, JSON or TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.LoadConfig(path)
}

// Runner provides a high-level API for running the benchmark.
type Runner struct {
	config *Config
	opts   []engine.Option
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for run events.
func WithLogger(log logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, engine.WithLogger(log))
	}
}

// WithWorkerCommand sets the command line of worker processes.
func WithWorkerCommand(cmd ...string) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, engine.WithWorkerCommand(cmd...))
	}
}

// WithWorkerEnv adds environment variables to worker processes.
func WithWorkerEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, engine.WithWorkerEnv(env...))
	}
}

// OnStrategy calls fn after each strategy finishes.
func OnStrategy(fn func(*StrategyResult)) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, engine.WithStrategyHook(fn))
	}
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg *Config, opts ...RunnerOption) *Runner {
	r := &Runner{config: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every strategy of the configuration in order.
//
// On failure the returned result holds the strategies that finished before
// the failing one.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	eng, err := engine.NewEngine(r.config, r.opts...)
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx)
}

// Run is a shorthand for NewRunner(cfg).Run(ctx).
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	return NewRunner(cfg).Run(ctx)
}

// WriteReport writes the JSON report of result to path.
func WriteReport(result *Result, path string) error {
	return report.GenerateJSON(result, path)
}

// ServeWorker serves worker requests on stdin and stdout until stdin is
// closed and returns the process exit code.
func ServeWorker() int {
	return worker.Main()
}
