package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 15

// runPool runs job for every index in [0, n) with at most workers in flight
// and returns the results in completion order. Jobs report failures in their
// result, never as errors.
func runPool[T any](ctx context.Context, workers, n int, job func(ctx context.Context, index int) T) []T {
	results := make([]T, 0, n)
	for result := range streamPool(ctx, workers, n, job) {
		results = append(results, result)
	}
	return results
}

// streamPool is runPool without the collection step. The channel is closed
// once every job has reported.
func streamPool[T any](ctx context.Context, workers, n int, job func(ctx context.Context, index int) T) <-chan T {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	resultCh := make(chan T, n)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	go func() {
		for index := 0; index < n; index++ {
			group.Go(func() error {
				resultCh <- job(groupCtx, index)
				return nil
			})
		}
		_ = group.Wait()
		close(resultCh)
	}()
	return resultCh
}
