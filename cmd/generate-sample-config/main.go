// Command generate-sample-config writes the default benchmark configuration
// with every strategy spelled out. The format follows the file extension.
package main

import (
	"fmt"
	"os"

	"github.com/wesleyorama2/figures/internal/bench/config"
	"github.com/wesleyorama2/figures/internal/bench/executor"
)

func main() {
	outputPath := "figures.yaml"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	data, err := config.Marshal(sampleConfig(), config.FormatOf(outputPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample config generated: %s\n", outputPath)
}

func sampleConfig() *config.BenchConfig {
	cfg := config.DefaultConfig()
	cfg.Description = "All four strategies with their default settings"
	cfg.Seed = 42
	// threads keeps workers at 0, which means one goroutine per CPU of the
	// machine that runs the file.
	for i := range cfg.Strategies {
		s := &cfg.Strategies[i]
		ec := s.ExecutorConfig()
		ec.ApplyDefaults()
		switch ec.Type {
		case executor.TypeProcesses:
			s.Workers = ec.Workers
			s.ChunkSize = ec.ChunkSize
		case executor.TypeMixed:
			s.Workers = ec.Workers
			s.Threads = ec.Threads
		}
	}
	return cfg
}
