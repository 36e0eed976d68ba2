package main

import (
	"testing"

	"github.com/wesleyorama2/figures/internal/bench/config"
)

func TestSampleConfig(t *testing.T) {
	cfg := sampleConfig()
	if len(cfg.Strategies) != 4 {
		t.Fatalf("len(Strategies) = %d, want 4", len(cfg.Strategies))
	}

	tests := []struct {
		executor  string
		workers   int
		threads   int
		chunkSize int
	}{
		{"sequential", 0, 0, 0},
		{"threads", 0, 0, 0},
		{"processes", 5, 0, 500},
		{"mixed", 5, 20, 0},
	}
	for i, tt := range tests {
		t.Run(tt.executor, func(t *testing.T) {
			s := cfg.Strategies[i]
			if s.Executor != tt.executor {
				t.Fatalf("Executor = %q, want %q", s.Executor, tt.executor)
			}
			if s.Workers != tt.workers || s.Threads != tt.threads || s.ChunkSize != tt.chunkSize {
				t.Errorf("got workers=%d threads=%d chunkSize=%d, want %d/%d/%d",
					s.Workers, s.Threads, s.ChunkSize, tt.workers, tt.threads, tt.chunkSize)
			}
		})
	}
}

func TestSampleConfig_ParsesBack(t *testing.T) {
	for _, name := range []string{"figures.yaml", "figures.json", "figures.toml"} {
		t.Run(name, func(t *testing.T) {
			data, err := config.Marshal(sampleConfig(), config.FormatOf(name))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			parsed, err := config.ParseConfig(data, name)
			if err != nil {
				t.Fatalf("ParseConfig() error = %v", err)
			}
			if parsed.Strategies[1].Workers != 0 {
				t.Errorf("threads workers = %d, want 0", parsed.Strategies[1].Workers)
			}
			if parsed.Seed != 42 {
				t.Errorf("Seed = %d, want 42", parsed.Seed)
			}
		})
	}
}
