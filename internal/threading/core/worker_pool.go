package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a pool of worker goroutines for per-column and per-row
// render work. ParallelRange may be called from several goroutines at once;
// Wait waits for every queued job.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	stopped    atomic.Bool
	started    atomic.Bool
	completed  atomic.Uint64
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// CreateDefaultWorkerPool creates and starts a pool with one worker per CPU.
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0)
	pool.Start()
	return pool
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.completed.Add(1)
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue. After Stop, or before Start, the job
// runs on the calling goroutine.
func (wp *WorkerPool) Submit(job func()) {
	if wp.stopped.Load() || !wp.started.Load() {
		job()
		wp.completed.Add(1)
		return
	}
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. Queued jobs are drained first.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		wp.wg.Wait()
		wp.stopped.Store(true)
		close(wp.quit)
	})
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of jobs run since the pool was created.
func (wp *WorkerPool) Completed() uint64 {
	return wp.completed.Load()
}

// ParallelRange splits [start, end) into contiguous chunks of at least
// minChunk indices and runs fn once per chunk. Chunks never overlap, so fn may
// write to disjoint slices of a shared buffer without locking. It waits only
// for its own chunks, so several goroutines may share the pool.
func (wp *WorkerPool) ParallelRange(ctx context.Context, start, end, minChunk int, fn func(lo, hi int)) {
	if start >= end {
		return
	}

	// a few chunks per worker keeps the load balanced when rows differ in cost
	totalWork := end - start
	chunkSize := max(max(1, minChunk), totalWork/(wp.numWorkers*4))

	var wg sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		if ctx.Err() != nil {
			break
		}
		lo, hi := i, min(i+chunkSize, end)
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			fn(lo, hi)
		})
	}
	wg.Wait()
}
