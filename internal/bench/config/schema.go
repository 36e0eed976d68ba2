// Package config provides configuration parsing and validation for benchmark
// runs.
package config

import (
	"github.com/wesleyorama2/figures/internal/bench/executor"
)

// DefaultCount is the number of shapes of each kind computed by default.
const DefaultCount = 10000

// BenchConfig is the root configuration of a benchmark run.
//
// Example YAML:
//
//	name: "baseline"
//	count: 10000
//	seed: 42
//	strategies:
//	  - executor: sequential
//	  - executor: threads
//	    workers: 8
//	  - name: "big chunks"
//	    executor: processes
//	    workers: 5
//	    chunkSize: 2000
//	  - executor: mixed
//	    workers: 5
//	    threads: 20
type BenchConfig struct {
	// Name of the run (for reporting)
	Name string `json:"name" yaml:"name" toml:"name"`

	// Description of the run (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Count is the number of shapes generated per kind
	Count int `json:"count" yaml:"count" toml:"count"`

	// Seed seeds the generator. Zero picks a time-based seed once per run.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed,omitempty"`

	// Strategies run in order on identical inputs
	Strategies []StrategyConfig `json:"strategies" yaml:"strategies" toml:"strategies"`

	// Options for the run
	Options *Options `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// StrategyConfig configures one strategy of a run.
type StrategyConfig struct {
	// Name identifies the strategy in output (default: the executor type)
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Executor is one of "sequential", "threads", "processes", "mixed"
	Executor string `json:"executor" yaml:"executor" toml:"executor"`

	// Workers is the goroutine count (threads) or process count (processes, mixed)
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty"`

	// Threads is the inner goroutine pool size of each mixed worker
	Threads int `json:"threads,omitempty" yaml:"threads,omitempty" toml:"threads,omitempty"`

	// ChunkSize is the number of tuples per request (processes)
	ChunkSize int `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty" toml:"chunkSize,omitempty"`
}

// Options controls run behavior.
type Options struct {
	// SkipVerify disables the cross-strategy result comparison
	SkipVerify bool `json:"skipVerify,omitempty" yaml:"skipVerify,omitempty" toml:"skipVerify,omitempty"`
}

// DefaultConfig returns the configuration of a plain `figures` invocation:
// all four strategies over DefaultCount shapes of each kind.
func DefaultConfig() *BenchConfig {
	cfg := &BenchConfig{
		Name:  "figures",
		Count: DefaultCount,
	}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultStrategies returns one strategy per executor type, in run order.
func DefaultStrategies() []StrategyConfig {
	types := executor.GetSupportedExecutors()
	strategies := make([]StrategyConfig, len(types))
	for i, t := range types {
		strategies[i] = StrategyConfig{Name: string(t), Executor: string(t)}
	}
	return strategies
}

// ApplyDefaults fills in strategy names and the default strategy list.
func (c *BenchConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "figures"
	}
	if len(c.Strategies) == 0 {
		c.Strategies = DefaultStrategies()
	}
	for i := range c.Strategies {
		if c.Strategies[i].Name == "" {
			c.Strategies[i].Name = c.Strategies[i].Executor
		}
	}
}

// Verify reports whether strategy results should be cross-checked.
func (c *BenchConfig) Verify() bool {
	return c.Options == nil || !c.Options.SkipVerify
}

// ExecutorConfig converts the strategy into an executor configuration.
func (s StrategyConfig) ExecutorConfig() *executor.Config {
	return &executor.Config{
		Name:      s.Name,
		Type:      executor.Type(s.Executor),
		Workers:   s.Workers,
		Threads:   s.Threads,
		ChunkSize: s.ChunkSize,
	}
}
