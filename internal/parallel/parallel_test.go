package parallel

import (
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestForVisitsEachIndexOnce(t *testing.T) {
	tests := []struct {
		name string
		n    int
		cfg  Config
	}{
		{"default config", 1000, DefaultConfig()},
		{"eager workers", 512, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}},
		{"worker count defaults to cpu count", 256, Config{Enabled: true, MinChunkSize: 1}},
		{"sequential", 100, Config{Enabled: false}},
		{"below chunk threshold", DefaultConfig().MinChunkSize - 1, DefaultConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.n)
			For(tt.n, func(i int) {
				atomic.AddInt32(&visits[i], 1)
			}, tt.cfg)

			for i, v := range visits {
				if v != 1 {
					t.Errorf("index %d visited %d times, want exactly once", i, v)
				}
			}
		})
	}
}

func TestForSkipsEmptyRange(t *testing.T) {
	for _, n := range []int{0, -5} {
		called := false
		For(n, func(_ int) { called = true }, DefaultConfig())
		if called {
			t.Errorf("For(%d) invoked the body", n)
		}
	}
}

func TestForBatchCoversEveryPair(t *testing.T) {
	const batch, channels = 4, 8
	var visits [batch * channels]int32

	ForBatch(batch, channels, func(b, c int) {
		atomic.AddInt32(&visits[b*channels+c], 1)
	}, DefaultConfig())

	for i, v := range visits {
		if v != 1 {
			t.Errorf("pair (%d, %d) visited %d times, want exactly once", i/channels, i%channels, v)
		}
	}
}

func TestForBatchSkipsEmptyGrid(t *testing.T) {
	called := false
	ForBatch(0, 8, func(_, _ int) { called = true }, DefaultConfig())
	ForBatch(4, 0, func(_, _ int) { called = true }, DefaultConfig())
	if called {
		t.Error("empty grid invoked the body")
	}
}

func benchmarkFor(b *testing.B, cfg Config) {
	for i := 0; i < b.N; i++ {
		var sum int64
		For(10000, func(i int) {
			atomic.AddInt64(&sum, int64(i))
		}, cfg)
	}
}

func BenchmarkFor(b *testing.B) {
	b.Run("parallel", func(b *testing.B) { benchmarkFor(b, DefaultConfig()) })
	b.Run("sequential", func(b *testing.B) { benchmarkFor(b, Config{Enabled: false}) })
}

func benchmarkForBatch(b *testing.B, cfg Config) {
	const batch, channels = 16, 64
	for i := 0; i < b.N; i++ {
		var sum int64
		ForBatch(batch, channels, func(bi, c int) {
			atomic.AddInt64(&sum, int64(bi*channels+c))
		}, cfg)
	}
}

func BenchmarkForBatch(b *testing.B) {
	b.Run("parallel", func(b *testing.B) { benchmarkForBatch(b, DefaultConfig()) })
	b.Run("sequential", func(b *testing.B) { benchmarkForBatch(b, Config{Enabled: false}) })
}
