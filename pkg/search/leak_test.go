//go:build test

package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"testing"

	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/bastiangx/lstrings/pkg/report"
)

// leakCorpus is a binary-looking blob with a few hundred strings in it.
func leakCorpus() []byte {
	var buf bytes.Buffer
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&buf, "\x7f\x00\x01symbol_%04d\x00\xffthe quick brown fox %d\x00\x02", i, i)
	}
	return buf.Bytes()
}

func leakFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	data := leakCorpus()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("blob_%02d.bin", i))
		if err := os.WriteFile(paths[i], data, 0644); err != nil {
			t.Fatalf("writing corpus failed: %v", err)
		}
	}
	return paths
}

func TestMemoryLeakFile(t *testing.T) {
	iterations := []int{50, 200, 500}
	path := leakFiles(t, 1)[0]

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < iterCount; i++ {
				res, err := File(path, Options{MinLen: 4, Mode: rank.Length, Unique: true})
				if err != nil {
					t.Fatalf("search failed: %v", err)
				}
				res.Close()
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.Alloc) - int64(baseline.Alloc)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			memPerOp := float64(memDelta) / float64(iterCount)

			t.Logf("iterations=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				iterCount, memDelta, memPerOp, goroutineDelta)

			if memPerOp > 4096 {
				t.Errorf("excessive memory retained per search: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryLeakRun(t *testing.T) {
	configs := []struct {
		jobs   int
		rounds int
	}{
		{jobs: 1, rounds: 20},
		{jobs: 4, rounds: 20},
		{jobs: 8, rounds: 10},
	}

	paths := leakFiles(t, 16)
	ref := bigram.New()
	ref.Add("the quick brown fox jumps over the lazy dog")

	for _, config := range configs {
		t.Run(fmt.Sprintf("jobs_%d_rounds_%d", config.jobs, config.rounds), func(t *testing.T) {
			memFile, err := os.Create(filepath.Join(t.TempDir(), "run_memory.prof"))
			if err != nil {
				t.Fatalf("profile file creation failed: %v", err)
			}
			defer memFile.Close()

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			opts := Options{MinLen: 4, Mode: rank.English, Direction: rank.Descending, Reference: ref, Jobs: config.jobs}
			for i := 0; i < config.rounds; i++ {
				w := report.NewWriter(io.Discard, report.Options{Encoding: report.Msgpack, Scores: true})
				if _, err := Run(context.Background(), paths, opts, w); err != nil {
					t.Fatalf("run failed: %v", err)
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.Alloc) - int64(baseline.Alloc)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			totalFiles := config.rounds * len(paths)

			t.Logf("jobs=%d rounds=%d files=%d mem_delta=%d bytes goroutine_delta=%d",
				config.jobs, config.rounds, totalFiles, memDelta, goroutineDelta)

			if err := pprof.WriteHeapProfile(memFile); err != nil {
				t.Errorf("heap profile write failed: %v", err)
			}
			if memDelta > 4*1024*1024 {
				t.Errorf("excessive memory retained: %d bytes", memDelta)
			}
			if goroutineDelta > 3 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}
