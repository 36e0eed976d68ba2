// Package engine runs a benchmark: every configured strategy computes the
// areas of the same generated workload and the results are cross-checked.
package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/config"
	"github.com/wesleyorama2/figures/internal/bench/executor"
	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/internal/generator"
	"github.com/wesleyorama2/figures/internal/logging"
	"github.com/wesleyorama2/figures/internal/shapes"
)

// Engine is the orchestrator of a benchmark run.
//
// Strategies run one after another, never concurrently, so each one has the
// machine to itself. Every strategy gets a freshly generated copy of the
// same workload; generation is not part of the measured time.
//
// Example usage:
//
//	cfg, _ := config.LoadConfig("bench.yaml")
//	engine, _ := NewEngine(cfg)
//	result, _ := engine.Run(context.Background())
//	fmt.Printf("verified: %v\n", result.Verified)
type Engine struct {
	config *config.BenchConfig
	log    logrus.FieldLogger

	hooks         []func(*StrategyResult)
	progress      func(name string, progress float64)
	interval      time.Duration
	workerCommand []string
	workerEnv     []string

	mu      sync.Mutex
	running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for engine and executor events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithStrategyHook registers fn to be called after each strategy finishes
// successfully, in run order.
func WithStrategyHook(fn func(*StrategyResult)) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, fn)
	}
}

// WithProgress calls fn every interval while a strategy runs, with the
// strategy's name and progress (0.0 to 1.0).
func WithProgress(interval time.Duration, fn func(name string, progress float64)) Option {
	return func(e *Engine) {
		e.interval = interval
		e.progress = fn
	}
}

// WithWorkerCommand overrides the command line of worker processes.
func WithWorkerCommand(cmd ...string) Option {
	return func(e *Engine) {
		e.workerCommand = cmd
	}
}

// WithWorkerEnv adds environment variables to worker processes.
func WithWorkerEnv(env ...string) Option {
	return func(e *Engine) {
		e.workerEnv = append(e.workerEnv, env...)
	}
}

// StrategyResult contains the results of a single strategy.
type StrategyResult struct {
	Name     string        `json:"name"`
	Executor executor.Type `json:"executor"`
	Label    string        `json:"label"`

	// Duration covers pool startup, computation and teardown.
	Duration time.Duration `json:"duration"`

	Counts    map[shapes.Kind]int     `json:"counts"`
	Checksums map[shapes.Kind]float64 `json:"checksums"`

	Metrics   *metrics.Snapshot               `json:"metrics"`
	TaskStats map[string]metrics.LatencyStats `json:"taskStats,omitempty"`
	Stats     *executor.Stats                 `json:"stats"`

	// Areas holds every computed area. It is not serialized.
	Areas executor.Areas `json:"-"`
}

// BenchResult contains the complete results of a run.
type BenchResult struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Count       int           `json:"count"`
	Seed        int64         `json:"seed"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Duration    time.Duration `json:"duration"`

	Strategies []*StrategyResult `json:"strategies"`

	// Verified is true when every strategy produced the same areas as the
	// first one. It stays false when verification is disabled.
	Verified bool `json:"verified"`
}

// Strategy returns the result of the strategy called name, or nil.
func (r *BenchResult) Strategy(name string) *StrategyResult {
	for _, s := range r.Strategies {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// MismatchError reports a strategy whose areas differ from the reference
// strategy's.
type MismatchError struct {
	Strategy  string
	Reference string
	Kind      shapes.Kind
	Index     int
}

func (e *MismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("strategy %s: %s results differ in length from %s", e.Strategy, e.Kind, e.Reference)
	}
	return fmt.Sprintf("strategy %s: %s area %d differs from %s", e.Strategy, e.Kind, e.Index, e.Reference)
}

// NewEngine creates a new benchmark engine.
//
// Defaults are applied to a copy; cfg is never modified.
//
// Returns the engine or an error if configuration is invalid.
func NewEngine(cfg *config.BenchConfig, opts ...Option) (*Engine, error) {
	c := *cfg
	c.Strategies = slices.Clone(cfg.Strategies)
	if cfg.Options != nil {
		options := *cfg.Options
		c.Options = &options
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{config: &c}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	return e, nil
}

// Run executes all strategies in order and returns the results.
//
// The first failing strategy stops the run. The returned result then holds
// the strategies that finished before it.
func (e *Engine) Run(ctx context.Context) (*BenchResult, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("engine is already running")
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	seed := e.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := &BenchResult{
		Name:        e.config.Name,
		Description: e.config.Description,
		Count:       e.config.Count,
		Seed:        seed,
		StartTime:   time.Now(),
		Strategies:  make([]*StrategyResult, 0, len(e.config.Strategies)),
	}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
	}()

	e.log.WithFields(logrus.Fields{
		"count":      e.config.Count,
		"seed":       seed,
		"strategies": len(e.config.Strategies),
	}).Info("benchmark started")

	verified := e.config.Verify()
	for _, sc := range e.config.Strategies {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sr, err := e.runStrategy(ctx, sc, seed)
		if err != nil {
			return result, fmt.Errorf("strategy %s failed: %w", sc.Name, err)
		}

		if verified && len(result.Strategies) > 0 {
			if err := verify(result.Strategies[0], sr); err != nil {
				result.Strategies = append(result.Strategies, sr)
				return result, err
			}
		}
		result.Strategies = append(result.Strategies, sr)

		for _, hook := range e.hooks {
			hook(sr)
		}
	}

	result.Verified = verified
	e.log.WithField("verified", result.Verified).Info("benchmark finished")
	return result, nil
}

// runStrategy generates the workload and runs one strategy on it.
func (e *Engine) runStrategy(ctx context.Context, sc config.StrategyConfig, seed int64) (*StrategyResult, error) {
	log := e.log.WithField("strategy", sc.Name)

	execConfig := sc.ExecutorConfig()
	execConfig.WorkerCommand = e.workerCommand
	execConfig.WorkerEnv = e.workerEnv
	execConfig.Logger = log

	exec, err := executor.CreateAndInitExecutor(ctx, execConfig)
	if err != nil {
		return nil, err
	}

	work := executor.Workload(generator.New(seed).Workload(e.config.Count))
	m := metrics.NewEngine()

	stop := e.reportProgress(sc.Name, exec)
	start := time.Now()
	areas, err := exec.Run(ctx, work, m)
	duration := time.Since(start)
	stop()
	if err != nil {
		return nil, err
	}

	sr := &StrategyResult{
		Name:      sc.Name,
		Executor:  exec.Type(),
		Label:     executor.Label(exec.Type()),
		Duration:  duration,
		Counts:    make(map[shapes.Kind]int, len(shapes.Kinds())),
		Checksums: make(map[shapes.Kind]float64, len(shapes.Kinds())),
		Metrics:   m.GetSnapshot(),
		TaskStats: m.GetTaskStats(),
		Stats:     exec.GetStats(),
		Areas:     areas,
	}
	for _, kind := range shapes.Kinds() {
		sr.Counts[kind] = len(areas[kind])
		sr.Checksums[kind] = areas.Sum(kind)
	}

	log.WithFields(logrus.Fields{
		"duration": duration,
		"tasks":    sr.Metrics.TotalTasks,
	}).Debug("strategy finished")
	return sr, nil
}

// reportProgress polls exec until the returned function is called.
func (e *Engine) reportProgress(name string, exec executor.Executor) (stop func()) {
	if e.progress == nil || e.interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				e.progress(name, exec.GetProgress())
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

// verify compares the areas of res with those of ref, kind by kind.
func verify(ref, res *StrategyResult) error {
	for _, kind := range shapes.Kinds() {
		want, got := ref.Areas[kind], res.Areas[kind]
		if len(want) != len(got) {
			return &MismatchError{Strategy: res.Name, Reference: ref.Name, Kind: kind, Index: -1}
		}
		for i := range want {
			if want[i] != got[i] {
				return &MismatchError{Strategy: res.Name, Reference: ref.Name, Kind: kind, Index: i}
			}
		}
	}
	return nil
}
