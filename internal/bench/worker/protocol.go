// Package worker runs shape area calculations in separate OS processes.
//
// The parent side is ProcessPool, which starts a fixed number of worker
// processes and hands each request to an idle one. The child side is Serve,
// which reads requests from stdin and writes responses to stdout.
//
// # Protocol
//
// Requests and responses are newline-delimited JSON. A worker answers every
// request before reading the next one, so each pipe carries at most one
// request in flight. Closing the worker's stdin asks it to exit.
//
//	{"id":1,"threads":20,"jobs":[{"kind":"square","values":[[3],[7]]}]}
//	{"id":1,"results":[{"kind":"square","areas":[9,49],"elapsedNanos":1200}]}
package worker

import (
	"fmt"
	"time"

	"github.com/wesleyorama2/figures/internal/shapes"
)

// Job is a batch of parameter tuples of a single kind.
type Job struct {
	Kind   shapes.Kind `json:"kind"`
	Values [][]int     `json:"values"`
}

// NewJob packs params into a Job. Every tuple is sent with kind, even if its
// own Kind field differs.
func NewJob(kind shapes.Kind, params []shapes.Params) Job {
	values := make([][]int, len(params))
	for i, p := range params {
		values[i] = p.Values
	}
	return Job{Kind: kind, Values: values}
}

// Request asks a worker to compute the areas of one or more jobs.
type Request struct {
	ID uint64 `json:"id"`

	// Threads is the size of the worker's inner goroutine pool.
	// Values <= 1 compute sequentially.
	Threads int `json:"threads,omitempty"`

	Jobs []Job `json:"jobs"`
}

// Tuples returns the number of tuples across all jobs.
func (r *Request) Tuples() int {
	n := 0
	for _, job := range r.Jobs {
		n += len(job.Values)
	}
	return n
}

// JobResult holds the areas of one job, in tuple order.
type JobResult struct {
	Kind         shapes.Kind `json:"kind"`
	Areas        []float64   `json:"areas"`
	ElapsedNanos int64       `json:"elapsedNanos"`
}

// Elapsed returns how long the worker spent computing the job.
func (r JobResult) Elapsed() time.Duration {
	return time.Duration(r.ElapsedNanos)
}

// Response answers the Request with the same ID. Either Error is set or
// Results holds one entry per job.
type Response struct {
	ID      uint64      `json:"id"`
	Results []JobResult `json:"results,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RemoteError is a failure reported by a worker process.
type RemoteError struct {
	PID       int
	RequestID uint64
	Message   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("worker %d request %d: %s", e.PID, e.RequestID, e.Message)
}
