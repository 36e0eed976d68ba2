// Package metrics records task latencies for a benchmark strategy.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Engine collects task latencies using HDR histograms.
//
// A task is one timed batch: all tuples of a kind for the in-process
// strategies, one chunk of tuples for the process strategies.
// Latencies are recorded in nanoseconds because a single area calculation
// takes well under a microsecond.
//
// # Thread Safety
//
// Engine is safe for concurrent use. Counters use atomic operations and
// histograms are protected by mutexes.
type Engine struct {
	latencyHist   *hdrhistogram.Histogram
	latencyHistMu sync.Mutex

	// Per-name histograms, keyed by shape kind
	taskHists   map[string]*hdrhistogram.Histogram
	taskHistsMu sync.RWMutex

	totalTasks  atomic.Int64
	failedTasks atomic.Int64
	totalItems  atomic.Int64

	startTime time.Time
	config    EngineConfig
}

// EngineConfig contains configuration for the metrics engine.
type EngineConfig struct {
	// HistogramMin is the minimum recordable value in nanoseconds (default: 1)
	HistogramMin int64

	// HistogramMax is the maximum recordable value in nanoseconds (default: 10 minutes)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultEngineConfig returns the default configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		HistogramMin:     1,
		HistogramMax:     int64(10 * time.Minute),
		HistogramSigFigs: 3,
	}
}

// NewEngine creates a new metrics engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig())
}

// NewEngineWithConfig creates a new metrics engine with custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	return &Engine{
		latencyHist: hdrhistogram.New(config.HistogramMin, config.HistogramMax, config.HistogramSigFigs),
		taskHists:   make(map[string]*hdrhistogram.Histogram),
		startTime:   time.Now(),
		config:      config,
	}
}

// RecordTask records the latency of one dispatched task.
//
// Parameters:
//   - duration: how long the task took
//   - name: per-name breakdown key (empty string to skip)
//   - items: number of tuples the task covered
//   - success: whether the task succeeded
func (e *Engine) RecordTask(duration time.Duration, name string, items int, success bool) {
	nanos := e.clamp(duration.Nanoseconds())

	e.latencyHistMu.Lock()
	e.latencyHist.RecordValue(nanos)
	e.latencyHistMu.Unlock()

	if name != "" {
		e.recordNamed(name, nanos)
	}

	e.totalTasks.Add(1)
	e.totalItems.Add(int64(items))
	if !success {
		e.failedTasks.Add(1)
	}
}

func (e *Engine) clamp(nanos int64) int64 {
	if nanos < e.config.HistogramMin {
		return e.config.HistogramMin
	}
	if nanos > e.config.HistogramMax {
		return e.config.HistogramMax
	}
	return nanos
}

// recordNamed records a latency in a per-name histogram.
// HDR histogram RecordValue is not thread-safe, so the lock is held.
func (e *Engine) recordNamed(name string, nanos int64) {
	e.taskHistsMu.Lock()
	defer e.taskHistsMu.Unlock()

	hist, exists := e.taskHists[name]
	if !exists {
		hist = hdrhistogram.New(e.config.HistogramMin, e.config.HistogramMax, e.config.HistogramSigFigs)
		e.taskHists[name] = hist
	}
	hist.RecordValue(nanos)
}

// GetSnapshot returns a point-in-time snapshot of all metrics.
func (e *Engine) GetSnapshot() *Snapshot {
	e.latencyHistMu.Lock()
	latency := statsFrom(e.latencyHist)
	e.latencyHistMu.Unlock()

	elapsed := time.Since(e.startTime)
	total := e.totalTasks.Load()
	items := e.totalItems.Load()

	itemsPerSecond := 0.0
	if elapsed.Seconds() > 0 {
		itemsPerSecond = float64(items) / elapsed.Seconds()
	}

	return &Snapshot{
		TotalTasks:     total,
		FailedTasks:    e.failedTasks.Load(),
		TotalItems:     items,
		Latency:        latency,
		ItemsPerSecond: itemsPerSecond,
		Elapsed:        elapsed,
		StartTime:      e.startTime,
		Timestamp:      time.Now(),
	}
}

// GetTaskStats returns per-name latency statistics.
func (e *Engine) GetTaskStats() map[string]LatencyStats {
	e.taskHistsMu.RLock()
	defer e.taskHistsMu.RUnlock()

	result := make(map[string]LatencyStats, len(e.taskHists))
	for name, hist := range e.taskHists {
		result[name] = statsFrom(hist)
	}
	return result
}

// TaskNames returns the recorded per-task names in sorted order.
func (e *Engine) TaskNames() []string {
	e.taskHistsMu.RLock()
	defer e.taskHistsMu.RUnlock()

	names := make([]string, 0, len(e.taskHists))
	for name := range e.taskHists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset resets all metrics to initial state.
func (e *Engine) Reset() {
	e.latencyHistMu.Lock()
	e.latencyHist.Reset()
	e.latencyHistMu.Unlock()

	e.taskHistsMu.Lock()
	e.taskHists = make(map[string]*hdrhistogram.Histogram)
	e.taskHistsMu.Unlock()

	e.totalTasks.Store(0)
	e.failedTasks.Store(0)
	e.totalItems.Store(0)
	e.startTime = time.Now()
}

func statsFrom(hist *hdrhistogram.Histogram) LatencyStats {
	return LatencyStats{
		Min:    time.Duration(hist.Min()),
		Max:    time.Duration(hist.Max()),
		Mean:   time.Duration(hist.Mean()),
		StdDev: time.Duration(hist.StdDev()),
		P50:    time.Duration(hist.ValueAtQuantile(50)),
		P90:    time.Duration(hist.ValueAtQuantile(90)),
		P99:    time.Duration(hist.ValueAtQuantile(99)),
		Count:  hist.TotalCount(),
	}
}

// Snapshot contains a point-in-time view of all metrics.
type Snapshot struct {
	TotalTasks     int64         `json:"totalTasks"`
	FailedTasks    int64         `json:"failedTasks"`
	TotalItems     int64         `json:"totalItems"`
	Latency        LatencyStats  `json:"latency"`
	ItemsPerSecond float64       `json:"itemsPerSecond"`
	Elapsed        time.Duration `json:"elapsed"`
	StartTime      time.Time     `json:"startTime"`
	Timestamp      time.Time     `json:"timestamp"`
}

// LatencyStats contains latency statistics.
type LatencyStats struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P99    time.Duration `json:"p99"`
	Count  int64         `json:"count"`
}
