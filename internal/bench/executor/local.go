package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/internal/bench/pool"
	"github.com/wesleyorama2/figures/internal/shapes"
)

var errNotInitialized = errors.New("executor not initialized: call Init() before Run()")

// Sequential computes every area on the calling goroutine.
type Sequential struct {
	tracker
}

// NewSequential creates a new sequential executor.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Type returns the executor type.
func (e *Sequential) Type() Type {
	return TypeSequential
}

// Init initializes the executor with configuration.
func (e *Sequential) Init(ctx context.Context, config *Config) error {
	return e.init(config, TypeSequential)
}

// Run computes the areas of every tuple in work.
func (e *Sequential) Run(ctx context.Context, work Workload, m *metrics.Engine) (Areas, error) {
	if e.config == nil {
		return nil, errNotInitialized
	}
	return e.runLocal(ctx, pool.Sequential(pool.WithTaskDone(e.tupleDone)), work, m)
}

// Threads computes areas on a bounded goroutine pool, one pool task per tuple.
type Threads struct {
	tracker
}

// NewThreads creates a new goroutine pool executor.
func NewThreads() *Threads {
	return &Threads{}
}

// Type returns the executor type.
func (e *Threads) Type() Type {
	return TypeThreads
}

// Init initializes the executor with configuration.
func (e *Threads) Init(ctx context.Context, config *Config) error {
	return e.init(config, TypeThreads)
}

// Run computes the areas of every tuple in work.
func (e *Threads) Run(ctx context.Context, work Workload, m *metrics.Engine) (Areas, error) {
	if e.config == nil {
		return nil, errNotInitialized
	}
	return e.runLocal(ctx, pool.New(e.config.Workers, pool.WithTaskDone(e.tupleDone)), work, m)
}

// tupleDone advances progress. It runs once per tuple, so it only touches
// one atomic counter.
func (t *tracker) tupleDone() {
	t.completed.Add(1)
}

// runLocal computes work kind by kind on p. Each kind is one task in m,
// timed around its whole batch so the per-tuple path stays uninstrumented.
func (t *tracker) runLocal(ctx context.Context, p *pool.Pool, work Workload, m *metrics.Engine) (Areas, error) {
	if m == nil {
		m = metrics.NewEngine()
	}

	out := newAreas(work)
	t.start(work.Len())
	defer t.finish()

	t.log.WithField("workers", p.Workers()).Debug("run started")

	for _, kind := range shapes.Kinds() {
		params := work[kind]
		if len(params) == 0 {
			continue
		}

		start := time.Now()
		areas, err := pool.Map(ctx, p, params, computeArea)
		m.RecordTask(time.Since(start), string(kind), len(params), err == nil)
		t.tasks.Add(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		out[kind] = areas
	}

	t.log.WithField("tasks", t.tasks.Load()).Debug("run finished")
	return out, nil
}

func computeArea(_ context.Context, params shapes.Params) (float64, error) {
	return shapes.Area(params)
}
