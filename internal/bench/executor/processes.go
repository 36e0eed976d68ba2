package executor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/internal/bench/pool"
	"github.com/wesleyorama2/figures/internal/bench/worker"
)

// Processes dispatches chunks of tuples to a pool of worker processes.
//
// Each kind is cut into chunks of ChunkSize tuples. Chunks are sent to idle
// workers as they free up and their areas are copied back at the chunk
// offset, so the result order never depends on which worker answered first.
type Processes struct {
	tracker
}

// NewProcesses creates a new process pool executor.
func NewProcesses() *Processes {
	return &Processes{}
}

// Type returns the executor type.
func (e *Processes) Type() Type {
	return TypeProcesses
}

// Init initializes the executor with configuration.
func (e *Processes) Init(ctx context.Context, config *Config) error {
	return e.init(config, TypeProcesses)
}

// Run computes the areas of every tuple in work. The worker processes live
// only for the duration of the call.
func (e *Processes) Run(ctx context.Context, work Workload, m *metrics.Engine) (Areas, error) {
	if e.config == nil {
		return nil, errNotInitialized
	}
	if m == nil {
		m = metrics.NewEngine()
	}

	out := newAreas(work)
	e.start(work.Len())
	defer e.finish()

	if work.Len() == 0 {
		return out, nil
	}

	chunks := chunkWorkload(work, e.config.ChunkSize)
	e.log.WithFields(logrus.Fields{
		"workers": e.config.Workers,
		"chunks":  len(chunks),
	}).Debug("run started")

	err := e.withProcessPool(ctx, func(procs *worker.ProcessPool) error {
		_, err := pool.Map(ctx, pool.New(procs.Workers()), chunks, func(ctx context.Context, c chunk) (struct{}, error) {
			req := &worker.Request{Jobs: []worker.Job{worker.NewJob(c.kind, c.params)}}
			resp, err := procs.Do(ctx, req)
			if err != nil {
				return struct{}{}, fmt.Errorf("%s[%d:%d]: %w", c.kind, c.offset, c.offset+len(c.params), err)
			}

			res := resp.Results[0]
			if len(res.Areas) != len(c.params) {
				return struct{}{}, fmt.Errorf("%s[%d:%d]: worker returned %d areas", c.kind, c.offset, c.offset+len(c.params), len(res.Areas))
			}
			copy(out[c.kind][c.offset:], res.Areas)

			m.RecordTask(res.Elapsed(), string(c.kind), len(c.params), true)
			e.done(len(c.params))
			return struct{}{}, nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// withProcessPool starts the configured worker processes, runs fn and shuts
// the processes down again. A failed shutdown fails an otherwise successful run.
func (t *tracker) withProcessPool(ctx context.Context, fn func(*worker.ProcessPool) error) error {
	procs, err := worker.StartProcessPool(ctx, worker.ProcessConfig{
		Workers: t.config.Workers,
		Command: t.config.WorkerCommand,
		Env:     t.config.WorkerEnv,
		Logger:  t.log,
	})
	if err != nil {
		return fmt.Errorf("start worker processes: %w", err)
	}

	if err := fn(procs); err != nil {
		procs.Close()
		return err
	}
	if err := procs.Close(); err != nil {
		return fmt.Errorf("stop worker processes: %w", err)
	}
	return nil
}
