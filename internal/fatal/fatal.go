// Package fatal centralizes the renderer's programming-error reporting.
// Programming errors -- a double precompute, a non-positive thread count,
// an empty arena destructor chain popped twice -- are not recoverable
// errors to be propagated up a call stack; the reference renderer treats
// them as process-fatal via dmnsn_error/assert. Go's natural analogue is
// panic, but tests need to observe that the right condition was detected
// without tearing down the test binary, so the actual panic call is routed
// through a single replaceable hook.
package fatal

import (
	"fmt"
	"log/slog"
	"sync"
)

// handler is the current fatal-error hook. It is package-global and
// mutex-guarded since every goroutine in a render may touch it.
var (
	handlerMu sync.Mutex
	handler   = defaultHandler
)

func defaultHandler(msg string) {
	slog.Error("fatal renderer error", "msg", msg)
	panic(msg)
}

// SetHandler replaces the fatal-error hook, returning the previous one so
// callers (tests, mainly) can restore it afterward. A nil handler resets
// to the default slog-then-panic behavior.
func SetHandler(h func(string)) (previous func(string)) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	previous = handler
	if h == nil {
		h = defaultHandler
	}
	handler = h
	return previous
}

// Fatalf formats msg and invokes the current fatal handler. Callers should
// treat this as non-returning: the default handler panics, and any
// replacement installed by SetHandler is expected to do the same or
// terminate the process, since callers never check for Fatalf to return.
func Fatalf(format string, args ...any) {
	handlerMu.Lock()
	h := handler
	handlerMu.Unlock()
	h(fmt.Sprintf(format, args...))
}

// Assert invokes Fatalf with msg if cond is false. It is the direct
// analogue of the reference renderer's dmnsn_assert macro.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		Fatalf(format, args...)
	}
}
