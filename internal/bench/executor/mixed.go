package executor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/internal/bench/pool"
	"github.com/wesleyorama2/figures/internal/bench/worker"
	"github.com/wesleyorama2/figures/internal/shapes"
)

// Mixed composes the two pools: the workload is partitioned into one coarse
// chunk per worker process and every process computes its chunk on an inner
// goroutine pool of Threads goroutines.
//
// Chunk i holds span i of every kind, so concatenating the chunk results in
// chunk order restores the workload order.
type Mixed struct {
	tracker
}

// NewMixed creates a new mixed executor.
func NewMixed() *Mixed {
	return &Mixed{}
}

// Type returns the executor type.
func (e *Mixed) Type() Type {
	return TypeMixed
}

// Init initializes the executor with configuration.
func (e *Mixed) Init(ctx context.Context, config *Config) error {
	return e.init(config, TypeMixed)
}

// mixedChunk is the share of one worker process.
type mixedChunk struct {
	index int
	spans map[shapes.Kind]span
}

// Run computes the areas of every tuple in work.
func (e *Mixed) Run(ctx context.Context, work Workload, m *metrics.Engine) (Areas, error) {
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

	chunks := make([]mixedChunk, e.config.Workers)
	for i := range chunks {
		chunks[i] = mixedChunk{index: i, spans: make(map[shapes.Kind]span, len(shapes.Kinds()))}
	}
	for _, kind := range shapes.Kinds() {
		for i, s := range partition(len(work[kind]), e.config.Workers) {
			chunks[i].spans[kind] = s
		}
	}

	e.log.WithFields(logrus.Fields{
		"workers": e.config.Workers,
		"threads": e.config.Threads,
	}).Debug("run started")

	err := e.withProcessPool(ctx, func(procs *worker.ProcessPool) error {
		_, err := pool.Map(ctx, pool.New(procs.Workers()), chunks, func(ctx context.Context, c mixedChunk) (struct{}, error) {
			req := &worker.Request{Threads: e.config.Threads}
			for _, kind := range shapes.Kinds() {
				s := c.spans[kind]
				req.Jobs = append(req.Jobs, worker.NewJob(kind, work[kind][s.lo:s.hi]))
			}

			resp, err := procs.Do(ctx, req)
			if err != nil {
				return struct{}{}, fmt.Errorf("chunk %d: %w", c.index, err)
			}

			for _, kind := range shapes.Kinds() {
				s := c.spans[kind]
				res, err := jobOf(resp, kind)
				if err != nil {
					return struct{}{}, fmt.Errorf("chunk %d: %w", c.index, err)
				}
				if len(res.Areas) != s.len() {
					return struct{}{}, fmt.Errorf("chunk %d: %s: worker returned %d areas for %d tuples", c.index, kind, len(res.Areas), s.len())
				}
				copy(out[kind][s.lo:s.hi], res.Areas)
				if s.len() > 0 {
					m.RecordTask(res.Elapsed(), string(kind), s.len(), true)
				}
			}
			e.done(req.Tuples())
			return struct{}{}, nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// jobOf returns the result for kind in resp, or an error if the worker left it out.
func jobOf(resp *worker.Response, kind shapes.Kind) (worker.JobResult, error) {
	for _, r := range resp.Results {
		if r.Kind == kind {
			return r, nil
		}
	}
	return worker.JobResult{}, fmt.Errorf("response %d has no %s result", resp.ID, kind)
}
