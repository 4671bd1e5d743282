package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestParallelRangeConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	const callers, rounds = 8, 50
	hits := make([][]int32, callers)
	var wg sync.WaitGroup
	for c := range hits {
		hits[c] = make([]int32, 300)
		wg.Add(1)
		go func(buf []int32) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				pool.ParallelRange(context.Background(), 0, len(buf), 1, func(lo, hi int) {
					for i := lo; i < hi; i++ {
						atomic.AddInt32(&buf[i], 1)
					}
				})
				// every chunk of this call has finished before it returns
				for i, h := range buf {
					if int(h) != r+1 {
						t.Errorf("round %d: index %d visited %d times", r, i, h)
						return
					}
				}
			}
		}(hits[c])
	}
	wg.Wait()
	if pool.Completed() == 0 {
		t.Error("no jobs ran on the workers")
	}
}

func TestParallelRangeChunksAreDisjoint(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Stop()

	tests := []struct {
		name       string
		start, end int
		minChunk   int
	}{
		{"small", 0, 5, 1},
		{"uneven", 3, 641, 8},
		{"chunk larger than range", 0, 10, 64},
		{"empty", 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]int32, tt.end)
			pool.ParallelRange(context.Background(), tt.start, tt.end, tt.minChunk, func(lo, hi int) {
				if hi-lo < tt.minChunk && hi != tt.end {
					t.Errorf("chunk [%d,%d) shorter than %d", lo, hi, tt.minChunk)
				}
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&buf[i], 1)
				}
			})
			for i := tt.start; i < tt.end; i++ {
				if buf[i] != 1 {
					t.Fatalf("index %d written %d times", i, buf[i])
				}
			}
		})
	}
}

func TestParallelRangeCancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	pool.ParallelRange(ctx, 0, 100, 1, func(lo, hi int) { ran.Add(int32(hi - lo)) })
	if ran.Load() != 0 {
		t.Errorf("%d jobs ran after cancellation", ran.Load())
	}
}

func TestSubmitAfterStopRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Stop()
	pool.Stop()

	done := false
	pool.Submit(func() { done = true })
	if !done {
		t.Error("job submitted after Stop did not run")
	}
	if pool.NumWorkers() != 2 {
		t.Errorf("NumWorkers = %d", pool.NumWorkers())
	}
}

func TestParallelMapKeepsOrder(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	in := make([]int, 257)
	for i := range in {
		in[i] = i
	}
	for _, pool := range []*WorkerPool{wp, nil} {
		out := ParallelMap(context.Background(), pool, in, 16, func(v int) int { return v * v })
		for i, v := range out {
			if v != i*i {
				t.Fatalf("out[%d] = %d", i, v)
			}
		}
	}
	if ParallelMap(context.Background(), wp, []int(nil), 1, func(v int) int { return v }) != nil {
		t.Error("empty input should give nil")
	}
}

func TestParallelMapStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := ParallelMap(ctx, nil, []int{1, 2, 3}, 1, func(v int) int { return v })
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %d after cancel", i, v)
		}
	}
}
