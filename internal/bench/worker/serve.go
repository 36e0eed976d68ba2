package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/bench/pool"
	"github.com/wesleyorama2/figures/internal/logging"
	"github.com/wesleyorama2/figures/internal/shapes"
)

// Serve answers requests read from r until r reaches EOF.
func Serve(ctx context.Context, r io.Reader, w io.Writer, log logrus.FieldLogger) error {
	dec := json.NewDecoder(r)
	enc := json.NewEncoder(w)

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("stdin closed, exiting")
				return nil
			}
			return fmt.Errorf("decode request: %w", err)
		}

		resp := Handle(ctx, &req)
		if resp.Error != "" {
			log.WithField("request", req.ID).Warn(resp.Error)
		} else {
			log.WithFields(logrus.Fields{
				"request": req.ID,
				"jobs":    len(req.Jobs),
				"threads": req.Threads,
			}).Debug("request handled")
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response %d: %w", req.ID, err)
		}
	}
}

// Handle computes the areas for every job of req.
func Handle(ctx context.Context, req *Request) *Response {
	p := pool.Sequential()
	if req.Threads > 1 {
		p = pool.New(req.Threads)
	}

	resp := &Response{ID: req.ID, Results: make([]JobResult, 0, len(req.Jobs))}
	for j, job := range req.Jobs {
		start := time.Now()
		areas, err := pool.Map(ctx, p, job.Values, func(_ context.Context, values []int) (float64, error) {
			return shapes.Area(shapes.Params{Kind: job.Kind, Values: values})
		})
		if err != nil {
			return &Response{ID: req.ID, Error: fmt.Sprintf("job %d (%s): %v", j, job.Kind, err)}
		}
		resp.Results = append(resp.Results, JobResult{
			Kind:         job.Kind,
			Areas:        areas,
			ElapsedNanos: time.Since(start).Nanoseconds(),
		})
	}
	return resp
}

// Main serves the protocol on stdin and stdout and returns the process exit
// code. It is the body of the hidden worker command.
func Main() int {
	log := logging.NewWorker(os.Stderr).WithField("pid", os.Getpid())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, os.Stdin, os.Stdout, log); err != nil {
		log.WithError(err).Error("worker failed")
		return 1
	}
	return 0
}
