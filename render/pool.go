package render

import (
	"context"
	"sync"
)

// WorkerFunc is one worker's share of a fork-join job: it receives the
// future's cancellation context, its own worker index, and the total
// worker count, and returns a non-nil error to abort the whole join.
type WorkerFunc func(ctx context.Context, worker, nworkers int) error

// ExecuteConcurrently spawns n worker goroutines, each running fn, and
// waits for all of them to finish -- the Go analogue of
// dmnsn_execute_concurrently's pthread fork-join: SetNThreads(n) before
// spawning, every worker reports itself finished via FinishThread as it
// exits (restoring the count to 1 once all have joined), and the first
// non-nil error any worker returned is the aggregate result, but only
// after every worker has actually finished -- a failing worker cancels
// the shared future so its siblings notice and unwind promptly instead
// of running to completion on doomed work.
func ExecuteConcurrently(future *Future, n int, fn WorkerFunc) error {
	future.SetNThreads(n)

	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			defer future.FinishThread()
			if err := fn(future.Context(), i, n); err != nil {
				errs[i] = err
				future.Cancel()
			}
		}()
	}
	wg.Wait()

	future.SetNThreads(1)

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
