package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/figures/internal/logging"
)

// DefaultProcesses is the number of worker processes started when
// ProcessConfig.Workers is not set.
const DefaultProcesses = 5

// ProcessConfig configures a ProcessPool.
type ProcessConfig struct {
	// Workers is the number of processes to start (default: DefaultProcesses).
	Workers int

	// Command is the worker command line. Defaults to the running
	// executable with the "worker" argument.
	Command []string

	// Env is appended to the parent environment for every worker.
	Env []string

	// Stderr receives worker diagnostics (default: os.Stderr).
	Stderr io.Writer

	// ShutdownTimeout bounds how long Close waits for workers to exit
	// before killing them (default: 5s).
	ShutdownTimeout time.Duration

	// Logger receives pool lifecycle events.
	Logger logrus.FieldLogger
}

// DefaultCommand returns the command line that runs the current executable
// as a worker.
func DefaultCommand() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return []string{exe, "worker"}, nil
}

// ProcessPool is a fixed set of worker processes.
//
// Do may be called from multiple goroutines; each call occupies one idle
// worker for a single request and response. Close must be called to release
// the processes.
type ProcessPool struct {
	config ProcessConfig
	procs  []*process
	idle   chan *process
	cancel context.CancelFunc
	log    logrus.FieldLogger

	nextID   atomic.Uint64
	requests atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

type process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	dec   *json.Decoder
}

// StartProcessPool starts config.Workers worker processes.
//
// The processes are bound to ctx: cancelling it kills them.
func StartProcessPool(ctx context.Context, config ProcessConfig) (*ProcessPool, error) {
	if config.Workers <= 0 {
		config.Workers = DefaultProcesses
	}
	if len(config.Command) == 0 {
		cmd, err := DefaultCommand()
		if err != nil {
			return nil, err
		}
		config.Command = cmd
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &ProcessPool{
		config: config,
		procs:  make([]*process, 0, config.Workers),
		idle:   make(chan *process, config.Workers),
		cancel: cancel,
		log:    config.Logger,
	}

	for i := 0; i < config.Workers; i++ {
		proc, err := p.spawn(ctx)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("start worker %d: %w", i, err)
		}
		p.procs = append(p.procs, proc)
		p.idle <- proc
	}

	p.log.WithField("workers", config.Workers).Debug("process pool started")
	return p, nil
}

func (p *ProcessPool) spawn(ctx context.Context) (*process, error) {
	cmd := exec.CommandContext(ctx, p.config.Command[0], p.config.Command[1:]...)
	cmd.Env = append(os.Environ(), p.config.Env...)
	cmd.Stderr = p.config.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p.log.WithField("pid", cmd.Process.Pid).Debug("worker started")
	return &process{
		cmd:   cmd,
		stdin: stdin,
		enc:   json.NewEncoder(stdin),
		dec:   json.NewDecoder(stdout),
	}, nil
}

// Workers returns the number of worker processes.
func (p *ProcessPool) Workers() int {
	return len(p.procs)
}

// Requests returns the number of requests sent so far.
func (p *ProcessPool) Requests() int64 {
	return p.requests.Load()
}

// Do sends req to an idle worker and waits for its response. It assigns
// req.ID. A failure reported by the worker is returned as *RemoteError.
//
// A worker whose pipe fails is not reused, so once every worker has failed
// Do blocks until ctx is done.
func (p *ProcessPool) Do(ctx context.Context, req *Request) (*Response, error) {
	var proc *process
	select {
	case proc = <-p.idle:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	req.ID = p.nextID.Add(1)
	p.requests.Add(1)
	pid := proc.cmd.Process.Pid

	if err := proc.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("worker %d: send request %d: %w", pid, req.ID, err)
	}
	var resp Response
	if err := proc.dec.Decode(&resp); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("worker %d: read response %d: %w", pid, req.ID, err)
	}
	p.idle <- proc

	if resp.ID != req.ID {
		return nil, fmt.Errorf("worker %d: response id %d does not match request %d", pid, resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, &RemoteError{PID: pid, RequestID: req.ID, Message: resp.Error}
	}
	if len(resp.Results) != len(req.Jobs) {
		return nil, fmt.Errorf("worker %d: %d results for %d jobs", pid, len(resp.Results), len(req.Jobs))
	}
	return &resp, nil
}

// Close asks every worker to exit and waits for them. Workers still running
// after ShutdownTimeout are killed. Close is safe to call more than once.
func (p *ProcessPool) Close() error {
	p.closeOnce.Do(func() {
		for _, proc := range p.procs {
			proc.stdin.Close()
		}

		errs := make(chan error, len(p.procs))
		go func() {
			for _, proc := range p.procs {
				errs <- proc.cmd.Wait()
			}
			close(errs)
		}()

		timer := time.NewTimer(p.config.ShutdownTimeout)
		defer timer.Stop()

		for done := false; !done; {
			select {
			case err, ok := <-errs:
				if !ok {
					done = true
					break
				}
				if err != nil && p.closeErr == nil {
					p.closeErr = fmt.Errorf("worker exit: %w", err)
				}
			case <-timer.C:
				p.log.Warn("workers did not exit in time, killing")
				p.cancel()
			}
		}

		p.cancel()
		p.log.WithField("requests", p.requests.Load()).Debug("process pool closed")
	})
	return p.closeErr
}
