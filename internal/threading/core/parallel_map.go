package core

import "context"

// ParallelMap applies fn to every item on the pool and returns the results in
// input order. Items below minChunk, or a nil pool, run on the caller.
// Indices skipped because ctx was cancelled keep the zero value.
func ParallelMap[T any, R any](ctx context.Context, wp *WorkerPool, items []T, minChunk int, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	results := make([]R, len(items))
	apply := func(lo, hi int) {
		for j := lo; j < hi; j++ {
			if ctx.Err() != nil {
				return
			}
			results[j] = fn(items[j])
		}
	}

	if wp == nil || len(items) < minChunk {
		apply(0, len(items))
		return results
	}
	wp.ParallelRange(ctx, 0, len(items), minChunk, apply)
	return results
}
