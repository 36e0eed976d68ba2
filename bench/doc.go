// Package bench runs the shape area benchmark from Go code.
//
// The CLI is a thin layer over this package. A run generates Count random
// trapezoids, rectangles and squares and computes their areas once per
// strategy:
//
//   - sequential: regular loops on one goroutine
//   - threads: one task per shape on a bounded goroutine pool
//   - processes: chunks of shapes on a pool of worker processes
//   - mixed: one chunk per worker process, each on an inner goroutine pool
//
// # Quick Start
//
//	cfg := bench.DefaultConfig()
//	cfg.Count = 50000
//	result, err := bench.NewRunner(cfg).Run(context.Background())
//
//	for _, s := range result.Strategies {
//	    fmt.Printf("%s: %v\n", s.Name, s.Duration)
//	}
//
// # Worker Processes
//
// The process strategies start the running executable again as a worker.
// A program that uses them must call ServeWorker when it is started with
// the "worker" argument, before doing anything else:
//
//	func main() {
//	    if len(os.Args) > 1 && os.Args[1] == "worker" {
//	        os.Exit(bench.ServeWorker())
//	    }
//	    ...
//	}
//
// WithWorkerCommand points the strategies at a different worker binary.
package bench
