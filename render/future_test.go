package render

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFutureProgressAndWait(t *testing.T) {
	f := New()
	f.SetTotal(4)

	done := make(chan struct{})
	go func() {
		f.Wait(1.0)
		close(done)
	}()

	for i := 0; i < 4; i++ {
		if err := f.Increment(); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after progress reached 1.0")
	}
	if !f.IsDone() {
		t.Error("expected IsDone after progress == total")
	}
}

func TestFutureCancelStopsIncrement(t *testing.T) {
	f := New()
	f.SetTotal(10)
	f.Cancel()

	if err := f.Increment(); !errors.Is(err, ErrCancelled) {
		t.Errorf("Increment after Cancel = %v, want ErrCancelled", err)
	}
	select {
	case <-f.Context().Done():
	default:
		t.Error("expected future's context to be done after Cancel")
	}
}

func TestFutureJoinReturnsWorkerError(t *testing.T) {
	f := New()
	wantErr := errors.New("boom")
	go f.finish(wantErr)

	if err := f.Join(); !errors.Is(err, wantErr) {
		t.Errorf("Join = %v, want %v", err, wantErr)
	}
}

func TestExecuteConcurrentlyRunsAllWorkers(t *testing.T) {
	f := New()
	const n = 4
	seen := make([]bool, n)
	err := ExecuteConcurrently(f, n, func(ctx context.Context, worker, nworkers int) error {
		seen[worker] = true
		return nil
	})
	if err != nil {
		t.Fatalf("ExecuteConcurrently: %v", err)
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("worker %d never ran", i)
		}
	}
}

func TestExecuteConcurrentlyPropagatesFirstError(t *testing.T) {
	f := New()
	wantErr := errors.New("worker 2 failed")
	err := ExecuteConcurrently(f, 4, func(ctx context.Context, worker, nworkers int) error {
		if worker == 2 {
			return wantErr
		}
		<-ctx.Done() // other workers should observe the cancellation promptly
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("ExecuteConcurrently error = %v, want %v", err, wantErr)
	}
}
