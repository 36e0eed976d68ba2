package engine

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/figures/internal/bench/config"
	"github.com/wesleyorama2/figures/internal/bench/executor"
	"github.com/wesleyorama2/figures/internal/bench/worker"
	"github.com/wesleyorama2/figures/internal/shapes"
)

const helperEnv = "FIGURES_TEST_WORKER"

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "serve" {
		os.Exit(worker.Main())
	}
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T, cfg *config.BenchConfig, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithWorkerCommand(os.Args[0]),
		WithWorkerEnv(helperEnv + "=serve"),
	}, opts...)

	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_RunAllStrategies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Count = 400
	cfg.Seed = 11

	var hooked []string
	e := newTestEngine(t, cfg, WithStrategyHook(func(sr *StrategyResult) {
		hooked = append(hooked, sr.Name)
	}))

	result, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Verified)
	assert.Equal(t, int64(11), result.Seed)
	assert.Equal(t, 400, result.Count)
	assert.Equal(t, []string{"sequential", "threads", "processes", "mixed"}, hooked)
	require.Len(t, result.Strategies, 4)

	labels := []string{"regular loops", "multithreading", "multiprocessing", "mixed approach"}
	reference := result.Strategies[0]
	for i, sr := range result.Strategies {
		assert.Equal(t, labels[i], sr.Label)
		assert.Positive(t, sr.Duration)
		for _, kind := range shapes.Kinds() {
			assert.Equal(t, 400, sr.Counts[kind], "%s %s", sr.Name, kind)
			assert.Equal(t, reference.Checksums[kind], sr.Checksums[kind], "%s %s", sr.Name, kind)
		}
		assert.Equal(t, int64(1200), sr.Metrics.TotalItems)
		assert.Equal(t, int64(1200), sr.Stats.Completed)
	}

	assert.Same(t, result.Strategies[2], result.Strategy("processes"))
	assert.Nil(t, result.Strategy("gpu"))
	assert.False(t, result.EndTime.Before(result.StartTime))
}

func TestEngine_SameSeedSameWorkload(t *testing.T) {
	cfg := &config.BenchConfig{
		Count:      50,
		Seed:       3,
		Strategies: []config.StrategyConfig{{Executor: "sequential"}},
	}

	first, err := newTestEngine(t, cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := newTestEngine(t, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Strategies[0].Areas.Equal(second.Strategies[0].Areas))
}

func TestEngine_TimeSeed(t *testing.T) {
	cfg := &config.BenchConfig{
		Count:      5,
		Strategies: []config.StrategyConfig{{Executor: "sequential"}, {Executor: "threads"}},
	}

	result, err := newTestEngine(t, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, result.Seed, "a seed is picked and reported")
	assert.True(t, result.Verified)
}

func TestEngine_ZeroCount(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Count = 0

	result, err := newTestEngine(t, cfg).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Strategies, 4)
	for _, sr := range result.Strategies {
		for _, kind := range shapes.Kinds() {
			assert.Zero(t, sr.Counts[kind])
			assert.NotNil(t, sr.Areas[kind])
		}
	}
}

func TestEngine_SkipVerify(t *testing.T) {
	cfg := &config.BenchConfig{
		Count:      5,
		Seed:       1,
		Strategies: []config.StrategyConfig{{Executor: "sequential"}},
		Options:    &config.Options{SkipVerify: true},
	}

	result, err := newTestEngine(t, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Verified)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestEngine(t, config.DefaultConfig()).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, result.Strategies)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(&config.BenchConfig{Count: -1})
	require.Error(t, err)

	var verrs *config.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestNewEngine_DoesNotModifyConfig(t *testing.T) {
	cfg := &config.BenchConfig{
		Count:      3,
		Strategies: []config.StrategyConfig{{Executor: "threads"}},
		Options:    &config.Options{},
	}
	strategies := cfg.Strategies

	e := newTestEngine(t, cfg)

	assert.Empty(t, cfg.Name)
	assert.Empty(t, cfg.Strategies[0].Name)
	assert.Same(t, &strategies[0], &cfg.Strategies[0])

	result, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "figures", result.Name)
	assert.Equal(t, "threads", result.Strategies[0].Name)
	assert.Empty(t, cfg.Strategies[0].Name)
}

func TestVerify(t *testing.T) {
	ref := &StrategyResult{Name: "sequential", Areas: executor.Areas{
		shapes.KindSquare:    {1, 4, 9},
		shapes.KindRectangle: {2},
	}}
	same := &StrategyResult{Name: "threads", Areas: executor.Areas{
		shapes.KindSquare:    {1, 4, 9},
		shapes.KindRectangle: {2},
	}}
	differs := &StrategyResult{Name: "mixed", Areas: executor.Areas{
		shapes.KindSquare:    {1, 5, 9},
		shapes.KindRectangle: {2},
	}}
	short := &StrategyResult{Name: "processes", Areas: executor.Areas{
		shapes.KindSquare: {1, 4, 9},
	}}

	assert.NoError(t, verify(ref, same))

	var mismatch *MismatchError
	require.ErrorAs(t, verify(ref, differs), &mismatch)
	assert.Equal(t, shapes.KindSquare, mismatch.Kind)
	assert.Equal(t, 1, mismatch.Index)
	assert.Contains(t, mismatch.Error(), "mixed")

	require.ErrorAs(t, verify(ref, short), &mismatch)
	assert.Equal(t, shapes.KindRectangle, mismatch.Kind)
	assert.Equal(t, -1, mismatch.Index)
}

func TestEngine_Progress(t *testing.T) {
	cfg := &config.BenchConfig{
		Count:      20000,
		Seed:       9,
		Strategies: []config.StrategyConfig{{Executor: "threads", Workers: 2}},
	}

	var (
		mu      sync.Mutex
		updates []float64
	)
	e := newTestEngine(t, cfg, WithProgress(time.Microsecond, func(name string, progress float64) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "threads", name)
		updates = append(updates, progress)
	}))

	_, err := e.Run(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range updates {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
