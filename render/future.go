// Package render implements the concurrency substrate and recursive
// shading pipeline that turns a populated scene.Scene into pixels: the
// Future progress/pause/cancel primitive, the fork-join worker pool, the
// shader itself, and the canvas sink it writes into. It is ported from
// libdimension's future.c/future-internal.h, the dmnsn_render_scene
// worker-pool driver, and raytrace.c.
package render

import (
	"context"
	"errors"
	"sync"

	"github.com/dimension/dimension/internal/fatal"
)

// ErrCancelled is returned by Increment when the future's context has
// been cancelled, the cooperative analogue of pthread_testcancel's
// async-but-consistent cancellation point.
var ErrCancelled = errors.New("render: future cancelled")

// Future tracks the progress of a background render and lets callers
// wait for a threshold, pause/resume every worker, or cancel the whole
// job -- a direct port of dmnsn_future's four-condition-variable design,
// using sync.Cond instead of pthread_cond_t and a context.Context instead
// of pthread_cancel for cooperative cancellation.
type Future struct {
	mu       sync.Mutex
	progress uint64
	total    uint64
	minWait  float64

	nthreads int
	nrunning int
	npaused  int

	progressCond    *sync.Cond
	noneRunningCond *sync.Cond
	allRunningCond  *sync.Cond
	resumeCond      *sync.Cond

	ctx    context.Context
	cancel context.CancelFunc

	done chan struct{}
	err  error
}

// New returns a future with progress 0/1, one (the caller's own) thread
// already running, matching dmnsn_new_future's initial state.
func New() *Future {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Future{
		total:    1,
		minWait:  1.0,
		nthreads: 1,
		nrunning: 1,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	f.progressCond = sync.NewCond(&f.mu)
	f.noneRunningCond = sync.NewCond(&f.mu)
	f.allRunningCond = sync.NewCond(&f.mu)
	f.resumeCond = sync.NewCond(&f.mu)
	return f
}

func (f *Future) progressUnlocked() float64 {
	return float64(f.progress) / float64(f.total)
}

// SetTotal sets the total number of loop iterations (image rows, for the
// scene renderer) progress is measured against.
func (f *Future) SetTotal(total uint64) {
	f.mu.Lock()
	f.total = total
	f.mu.Unlock()
}

// Progress returns current progress in [0,1].
func (f *Future) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progressUnlocked()
}

// IsDone reports whether progress has reached total.
func (f *Future) IsDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress == f.total
}

// Wait blocks until Progress() >= progress.
func (f *Future) Wait(progress float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.progressUnlocked() < progress {
		if progress < f.minWait {
			f.minWait = progress
		}
		f.progressCond.Wait()
	}
}

// Pause blocks every worker thread at its next Increment call, waiting
// first for all of them to be running (so a pause can't race a thread
// that hasn't started yet) and then for all of them to have actually
// stopped. Pause calls nest: each Pause needs its own Resume, and workers
// move again only once every Pause has been matched.
func (f *Future) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.nrunning < f.nthreads {
		f.allRunningCond.Wait()
	}
	f.npaused++
	if f.npaused == 1 {
		for f.nrunning > 0 {
			f.noneRunningCond.Wait()
		}
	}
}

// Resume releases one level of Pause, waking every worker once the
// nesting count reaches zero.
func (f *Future) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	fatal.Assert(f.npaused > 0, "future resumed without a matching pause")
	f.npaused--
	if f.npaused == 0 {
		f.resumeCond.Broadcast()
	}
}

// Increment records one completed loop iteration, parks the calling
// worker if the future is currently paused, and returns ErrCancelled if
// the future's context has been cancelled -- callers must treat a
// non-nil return as "stop working and unwind", the same contract
// pthread_testcancel enforces via the C renderer's cleanup handler.
func (f *Future) Increment() error {
	if err := f.ctx.Err(); err != nil {
		return ErrCancelled
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.progress++
	if f.progressUnlocked() >= f.minWait {
		f.minWait = 1.0
		f.progressCond.Broadcast()
	}

	if f.npaused > 0 {
		fatal.Assert(f.nrunning > 0, "more worker threads reported running than expected")
		f.nrunning--
		if f.nrunning == 0 {
			f.noneRunningCond.Broadcast()
		}

		for f.npaused > 0 {
			f.resumeCond.Wait()
			if err := f.ctx.Err(); err != nil {
				f.nrunning++
				return ErrCancelled
			}
		}

		f.nrunning++
		if f.nrunning == f.nthreads {
			f.allRunningCond.Broadcast()
		}
	}
	return nil
}

// Finish immediately marks the future 100% complete and drops its
// thread count to zero, waking every waiter -- used to unblock Wait/Pause
// callers when a render aborts early.
func (f *Future) Finish() {
	f.mu.Lock()
	f.progress = f.total
	f.nthreads, f.nrunning = 0, 0
	f.progressCond.Broadcast()
	f.noneRunningCond.Broadcast()
	f.allRunningCond.Broadcast()
	f.mu.Unlock()
}

// SetNThreads records the number of worker threads about to start; it
// must be called with no threads currently paused.
func (f *Future) SetNThreads(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fatal.Assert(f.nrunning == f.nthreads, "future nthreads set while paused")
	f.nthreads, f.nrunning = n, n
}

// FinishThread records that one worker thread has exited, for final
// bookkeeping right before the pool's fork-join join() point.
func (f *Future) FinishThread() {
	f.mu.Lock()
	defer f.mu.Unlock()
	fatal.Assert(f.nthreads > 0, "finish-thread called with no threads")
	f.nthreads--
	fatal.Assert(f.nrunning > 0, "finish-thread called with no running threads")
	f.nrunning--
	if f.nrunning == 0 {
		f.noneRunningCond.Broadcast()
	}
}

// Cancel requests cooperative cancellation: every worker observes it on
// its next Increment call and unwinds.
func (f *Future) Cancel() { f.cancel() }

// Context returns the future's cancellation context, for workers (or
// the collaborator driving them) to select on alongside blocking I/O.
func (f *Future) Context() context.Context { return f.ctx }

// finish signals Join with the worker pool's aggregate result. Callers
// (ExecuteConcurrently) call this exactly once.
func (f *Future) finish(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	close(f.done)
}

// Join blocks until the render's worker pool has finished, returning the
// first non-nil error any worker returned (if any), matching
// dmnsn_future_join's non-zero exit status convention.
func (f *Future) Join() error {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
