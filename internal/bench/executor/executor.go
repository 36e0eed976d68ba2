// Package executor provides the scheduling strategies used to compute shape
// areas.
package executor

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/internal/shapes"
)

// Type identifies the type of executor.
type Type string

const (
	// TypeSequential computes every area on the calling goroutine.
	TypeSequential Type = "sequential"

	// TypeThreads computes areas on a bounded goroutine pool.
	TypeThreads Type = "threads"

	// TypeProcesses dispatches chunks of tuples to a pool of worker processes.
	TypeProcesses Type = "processes"

	// TypeMixed splits the workload into one chunk per worker process and
	// each process computes its chunk on an inner goroutine pool.
	TypeMixed Type = "mixed"
)

const (
	// DefaultProcesses is the worker process count of the process strategies.
	DefaultProcesses = 5

	// DefaultChunkSize is the number of tuples per request of the processes strategy.
	DefaultChunkSize = 500

	// DefaultMixedThreads is the inner goroutine pool size of the mixed strategy.
	DefaultMixedThreads = 20
)

// Executor defines the interface for area computation strategies.
//
// Every executor returns the same areas for the same workload; they differ
// only in how the work is scheduled. The first failing tuple aborts the run
// and no partial results are returned.
type Executor interface {
	// Type returns the executor type.
	Type() Type

	// Init initializes the executor with configuration.
	// Called once before Run().
	Init(ctx context.Context, config *Config) error

	// Run computes the areas of every tuple in work and blocks until done.
	// Per-task latencies are recorded in metrics.
	Run(ctx context.Context, work Workload, metrics *metrics.Engine) (Areas, error)

	// GetProgress returns current progress (0.0 to 1.0).
	GetProgress() float64

	// GetStats returns executor-specific statistics.
	GetStats() *Stats
}

// Workload holds the parameter tuples to compute, per shape kind.
type Workload map[shapes.Kind][]shapes.Params

// Len returns the total number of tuples.
func (w Workload) Len() int {
	n := 0
	for _, params := range w {
		n += len(params)
	}
	return n
}

// Areas holds computed areas per shape kind, in workload order.
type Areas map[shapes.Kind][]float64

// Len returns the total number of areas.
func (a Areas) Len() int {
	n := 0
	for _, areas := range a {
		n += len(areas)
	}
	return n
}

// Equal reports whether a and b hold exactly the same areas in the same order.
func (a Areas) Equal(b Areas) bool {
	if len(a) != len(b) {
		return false
	}
	for kind, x := range a {
		y, ok := b[kind]
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
	}
	return true
}

// Sum returns the sum of the areas of kind.
func (a Areas) Sum(kind shapes.Kind) float64 {
	total := 0.0
	for _, v := range a[kind] {
		total += v
	}
	return total
}

// newAreas allocates result slices matching the shape of work.
// Every shape kind gets a non-nil slice.
func newAreas(work Workload) Areas {
	out := make(Areas, len(shapes.Kinds()))
	for _, kind := range shapes.Kinds() {
		out[kind] = make([]float64, len(work[kind]))
	}
	return out
}

// Config contains configuration for an executor.
type Config struct {
	// Name is the name of this executor instance
	Name string `json:"name" yaml:"name"`

	// Type is the executor type
	Type Type `json:"type" yaml:"type"`

	// Workers is the goroutine count (threads) or process count
	// (processes, mixed). Zero selects the type's default.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	// Threads is the inner goroutine pool size of each mixed worker process.
	Threads int `json:"threads,omitempty" yaml:"threads,omitempty"`

	// ChunkSize is the number of tuples per request (processes).
	ChunkSize int `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty"`

	// WorkerCommand overrides the worker process command line.
	WorkerCommand []string `json:"-" yaml:"-"`

	// WorkerEnv is appended to the environment of worker processes.
	WorkerEnv []string `json:"-" yaml:"-"`

	// Logger receives executor lifecycle events.
	Logger logrus.FieldLogger `json:"-" yaml:"-"`
}

// Validate validates the executor configuration.
func (c *Config) Validate() error {
	if c.Type == "" {
		return &ValidationError{Field: "type", Message: "executor type is required"}
	}

	switch c.Type {
	case TypeSequential:

	case TypeThreads:
		if c.Workers < 0 {
			return &ValidationError{Field: "workers", Message: "workers must be >= 0"}
		}

	case TypeProcesses:
		if c.Workers < 0 {
			return &ValidationError{Field: "workers", Message: "workers must be >= 0"}
		}
		if c.ChunkSize < 0 {
			return &ValidationError{Field: "chunkSize", Message: "chunkSize must be >= 0"}
		}

	case TypeMixed:
		if c.Workers < 0 {
			return &ValidationError{Field: "workers", Message: "workers must be >= 0"}
		}
		if c.Threads < 0 {
			return &ValidationError{Field: "threads", Message: "threads must be >= 0"}
		}

	default:
		return &ValidationError{Field: "type", Message: "unknown executor type: " + string(c.Type)}
	}

	return nil
}

// ApplyDefaults fills zero fields with the defaults of the executor type.
func (c *Config) ApplyDefaults() {
	switch c.Type {
	case TypeSequential:
		c.Workers = 1
	case TypeThreads:
		if c.Workers == 0 {
			c.Workers = runtime.NumCPU()
		}
	case TypeProcesses:
		if c.Workers == 0 {
			c.Workers = DefaultProcesses
		}
		if c.ChunkSize == 0 {
			c.ChunkSize = DefaultChunkSize
		}
	case TypeMixed:
		if c.Workers == 0 {
			c.Workers = DefaultProcesses
		}
		if c.Threads == 0 {
			c.Threads = DefaultMixedThreads
		}
	}
	if c.Name == "" {
		c.Name = string(c.Type)
	}
}

// Stats contains executor statistics.
type Stats struct {
	StartTime time.Time     `json:"startTime"`
	Elapsed   time.Duration `json:"elapsed"`

	Workers int `json:"workers"`
	Threads int `json:"threads,omitempty"`

	// Tasks is the number of dispatched units of work
	Tasks int64 `json:"tasks"`

	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error on field '" + e.Field + "': " + e.Message
}

// tracker holds the progress state shared by all executors.
type tracker struct {
	config *Config
	log    logrus.FieldLogger

	mu        sync.RWMutex
	startTime time.Time
	endTime   time.Time

	running   atomic.Bool
	total     atomic.Int64
	completed atomic.Int64
	tasks     atomic.Int64
}

func (t *tracker) init(config *Config, want Type) error {
	if config.Type != want {
		return &ValidationError{Field: "type", Message: "expected " + string(want) + ", got " + string(config.Type)}
	}
	if err := config.Validate(); err != nil {
		return err
	}
	config.ApplyDefaults()

	t.config = config
	t.log = config.Logger
	if t.log == nil {
		t.log = logrus.StandardLogger()
	}
	t.log = t.log.WithField("strategy", config.Name)
	return nil
}

func (t *tracker) start(total int) {
	t.mu.Lock()
	t.startTime = time.Now()
	t.endTime = time.Time{}
	t.mu.Unlock()

	t.total.Store(int64(total))
	t.completed.Store(0)
	t.tasks.Store(0)
	t.running.Store(true)
}

func (t *tracker) finish() {
	t.mu.Lock()
	t.endTime = time.Now()
	t.mu.Unlock()
	t.running.Store(false)
}

func (t *tracker) done(items int) {
	t.tasks.Add(1)
	t.completed.Add(int64(items))
}

// GetProgress returns current progress (0.0 to 1.0).
func (t *tracker) GetProgress() float64 {
	total := t.total.Load()
	if total == 0 {
		t.mu.RLock()
		started := !t.startTime.IsZero()
		t.mu.RUnlock()
		if !started || t.running.Load() {
			return 0.0
		}
		return 1.0
	}
	progress := float64(t.completed.Load()) / float64(total)
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

// GetStats returns executor statistics.
func (t *tracker) GetStats() *Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := &Stats{
		StartTime: t.startTime,
		Tasks:     t.tasks.Load(),
		Completed: t.completed.Load(),
		Total:     t.total.Load(),
	}
	if t.config != nil {
		stats.Workers = t.config.Workers
		stats.Threads = t.config.Threads
	}
	switch {
	case t.startTime.IsZero():
	case t.running.Load():
		stats.Elapsed = time.Since(t.startTime)
	default:
		stats.Elapsed = t.endTime.Sub(t.startTime)
	}
	return stats
}
