// Package report writes benchmark results as JSON documents and reads them
// back.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wesleyorama2/figures/internal/bench/engine"
	"github.com/wesleyorama2/figures/internal/bench/metrics"
	"github.com/wesleyorama2/figures/pkg/jsonschema"
)

// Version is the version of the report format.
const Version = 1

// Report is the JSON document written by GenerateJSON.
//
// Durations are in seconds, latencies in nanoseconds.
type Report struct {
	Version         int              `json:"version"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Count           int              `json:"count"`
	Seed            int64            `json:"seed"`
	StartTime       time.Time        `json:"startTime"`
	DurationSeconds float64          `json:"durationSeconds"`
	Verified        bool             `json:"verified"`
	Strategies      []StrategyReport `json:"strategies"`
}

// StrategyReport holds the results of one strategy.
type StrategyReport struct {
	Name            string  `json:"name"`
	Executor        string  `json:"executor"`
	Label           string  `json:"label"`
	DurationSeconds float64 `json:"durationSeconds"`

	Workers int `json:"workers"`
	Threads int `json:"threads,omitempty"`

	Tasks           int64   `json:"tasks"`
	Shapes          int64   `json:"shapes"`
	ShapesPerSecond float64 `json:"shapesPerSecond"`

	Counts    map[string]int     `json:"counts"`
	Checksums map[string]float64 `json:"checksums"`

	Latency Latency            `json:"latency"`
	PerKind map[string]Latency `json:"perKind,omitempty"`
}

// Latency is a task latency distribution in nanoseconds.
type Latency struct {
	Count int64 `json:"count"`
	Min   int64 `json:"min"`
	Mean  int64 `json:"mean"`
	P50   int64 `json:"p50"`
	P90   int64 `json:"p90"`
	P99   int64 `json:"p99"`
	Max   int64 `json:"max"`
}

func latencyFrom(s metrics.LatencyStats) Latency {
	return Latency{
		Count: s.Count,
		Min:   s.Min.Nanoseconds(),
		Mean:  s.Mean.Nanoseconds(),
		P50:   s.P50.Nanoseconds(),
		P90:   s.P90.Nanoseconds(),
		P99:   s.P99.Nanoseconds(),
		Max:   s.Max.Nanoseconds(),
	}
}

// New converts a run result into a report.
func New(result *engine.BenchResult) *Report {
	r := &Report{
		Version:         Version,
		Name:            result.Name,
		Description:     result.Description,
		Count:           result.Count,
		Seed:            result.Seed,
		StartTime:       result.StartTime,
		DurationSeconds: result.Duration.Seconds(),
		Verified:        result.Verified,
		Strategies:      make([]StrategyReport, 0, len(result.Strategies)),
	}

	for _, sr := range result.Strategies {
		s := StrategyReport{
			Name:            sr.Name,
			Executor:        string(sr.Executor),
			Label:           sr.Label,
			DurationSeconds: sr.Duration.Seconds(),
			Counts:          make(map[string]int, len(sr.Counts)),
			Checksums:       make(map[string]float64, len(sr.Checksums)),
		}
		if sr.Stats != nil {
			s.Workers = sr.Stats.Workers
			s.Threads = sr.Stats.Threads
		}
		if sr.Metrics != nil {
			s.Tasks = sr.Metrics.TotalTasks
			s.Shapes = sr.Metrics.TotalItems
			s.Latency = latencyFrom(sr.Metrics.Latency)
		}
		if sr.Duration > 0 {
			s.ShapesPerSecond = float64(s.Shapes) / sr.Duration.Seconds()
		}
		for kind, n := range sr.Counts {
			s.Counts[string(kind)] = n
		}
		for kind, sum := range sr.Checksums {
			s.Checksums[string(kind)] = sum
		}
		if len(sr.TaskStats) > 0 {
			s.PerKind = make(map[string]Latency, len(sr.TaskStats))
			for name, stats := range sr.TaskStats {
				s.PerKind[name] = latencyFrom(stats)
			}
		}
		r.Strategies = append(r.Strategies, s)
	}
	return r
}

// GenerateJSON writes the report of result to outputPath.
func GenerateJSON(result *engine.BenchResult, outputPath string) error {
	data, err := GenerateJSONBytes(result)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// GenerateJSONBytes returns the indented JSON report of result.
func GenerateJSONBytes(result *engine.BenchResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result cannot be nil")
	}

	data, err := json.MarshalIndent(New(result), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads a report file and checks it against the report schema.
// It returns the raw document so callers can query it.
func Load(path string) ([]byte, *Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read report: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, &r, nil
}

var schema = jsonschema.MustCompile("figures-report.json", SchemaJSON)

// Validate checks a JSON report document against SchemaJSON.
func Validate(data []byte) error {
	if err := schema.ValidateJSON(data); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}
	return nil
}
