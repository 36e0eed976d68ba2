package executor

import (
	"context"
	"fmt"
)

// NewExecutor creates a new executor of the specified type.
//
// Supported types:
//   - "sequential" - every tuple on the calling goroutine
//   - "threads" - one task per tuple on a bounded goroutine pool
//   - "processes" - chunks of tuples on a pool of worker processes
//   - "mixed" - one coarse chunk per worker process, each on an inner goroutine pool
//
// Returns an uninitialized executor. Call Init() before Run().
func NewExecutor(executorType Type) (Executor, error) {
	switch executorType {
	case TypeSequential:
		return NewSequential(), nil
	case TypeThreads:
		return NewThreads(), nil
	case TypeProcesses:
		return NewProcesses(), nil
	case TypeMixed:
		return NewMixed(), nil
	default:
		return nil, fmt.Errorf("unknown executor type: %s", executorType)
	}
}

// NewExecutorFromString creates a new executor from a string type name.
func NewExecutorFromString(executorType string) (Executor, error) {
	return NewExecutor(Type(executorType))
}

// CreateAndInitExecutor creates and initializes an executor with the given config.
func CreateAndInitExecutor(ctx context.Context, cfg *Config) (Executor, error) {
	exec, err := NewExecutor(cfg.Type)
	if err != nil {
		return nil, err
	}

	if err := exec.Init(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize executor: %w", err)
	}

	return exec, nil
}

// IsValidExecutorType returns true if the type is a valid executor type.
func IsValidExecutorType(executorType string) bool {
	switch Type(executorType) {
	case TypeSequential, TypeThreads, TypeProcesses, TypeMixed:
		return true
	default:
		return false
	}
}

// GetSupportedExecutors returns all executor types in their run order.
func GetSupportedExecutors() []Type {
	return []Type{
		TypeSequential,
		TypeThreads,
		TypeProcesses,
		TypeMixed,
	}
}

// ExecutorDescription provides documentation for an executor type.
type ExecutorDescription struct {
	Type Type
	Name string

	// Label is the phrase used in the timing line ("Using <label> finished in ...").
	Label string

	Description string
	UseCases    []string
}

// GetExecutorDescription returns documentation for an executor type.
func GetExecutorDescription(executorType Type) *ExecutorDescription {
	switch executorType {
	case TypeSequential:
		return &ExecutorDescription{
			Type:        TypeSequential,
			Name:        "Sequential",
			Label:       "regular loops",
			Description: "Computes every area in order on a single goroutine. No concurrency, no setup cost.",
			UseCases: []string{
				"Baseline for the other strategies",
				"Reference results for verification",
			},
		}
	case TypeThreads:
		return &ExecutorDescription{
			Type:        TypeThreads,
			Name:        "Threads",
			Label:       "multithreading",
			Description: "Submits one task per tuple to a bounded goroutine pool (default: one goroutine per CPU). Tasks are so small that scheduling overhead dominates.",
			UseCases: []string{
				"Measuring per-task scheduling overhead",
				"Comparing fine-grained against coarse-grained parallelism",
			},
		}
	case TypeProcesses:
		return &ExecutorDescription{
			Type:        TypeProcesses,
			Name:        "Processes",
			Label:       "multiprocessing",
			Description: "Starts a pool of worker processes (default 5) and sends them chunks of tuples over pipes. Pays process startup and serialization cost.",
			UseCases: []string{
				"Measuring inter-process dispatch cost",
				"Isolating work in separate address spaces",
			},
		}
	case TypeMixed:
		return &ExecutorDescription{
			Type:        TypeMixed,
			Name:        "Mixed",
			Label:       "mixed approach",
			Description: "Splits the workload into one chunk per worker process (default 5); each process computes its chunk on an inner goroutine pool (default 20).",
			UseCases: []string{
				"Two-level parallelism",
				"Amortizing process dispatch over large chunks",
			},
		}
	default:
		return nil
	}
}

// Label returns the timing-line label of an executor type, or the type name
// for unknown types.
func Label(executorType Type) string {
	if d := GetExecutorDescription(executorType); d != nil {
		return d.Label
	}
	return string(executorType)
}
