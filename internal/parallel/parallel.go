// Package parallel distributes the CPU backend's kernel loops across a
// bounded set of worker goroutines.
//
// The pipeline's hot loops have two shapes: long flat ranges (im2col, one
// row per convolution output position) and batch-by-channel grids
// (pooling, convolution backward). Both funnel through For; ForBatch is
// the grid adapter.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls how kernel loops are distributed.
type Config struct {
	// Enabled turns worker distribution on. A disabled config runs every
	// loop on the calling goroutine.
	Enabled bool

	// NumWorkers caps the goroutines per loop.
	NumWorkers int

	// MinChunkSize is both the sequential cutoff and the claim
	// granularity: loops shorter than this never fan out, and workers
	// take this many indices per claim.
	MinChunkSize int
}

// DefaultConfig distributes across every CPU. The chunk size amortizes
// claim overhead against the cost of one im2col row.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// For runs f(i) for every i in [0, n), fanning out to workers when the
// config allows it and the range is long enough to pay for it. Workers
// claim chunks from a shared counter until the range is exhausted. For
// returns only after every call to f has returned.
func For(n int, f func(i int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := cfg.MinChunkSize
	if chunk < 1 {
		chunk = 1
	}
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if chunks := (n + chunk - 1) / chunk; workers > chunks {
		workers = chunks
	}

	var next int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				start := int(atomic.AddInt64(&next, int64(chunk))) - chunk
				if start >= n {
					return
				}
				end := min(start+chunk, n)
				for i := start; i < end; i++ {
					f(i)
				}
			}
		}()
	}
	wg.Wait()
}

// ForBatch runs f(b, c) over a batch-by-channel grid. The pipeline
// optimizes a single image, so in practice b stays 0 and the fan-out
// comes entirely from the channel axis.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	if batch <= 0 || channels <= 0 {
		return
	}
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
