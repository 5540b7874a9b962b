// Package leaktest checks that background components such as the worker pool
// and database pool release their goroutines on shutdown.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	// DefaultWait bounds how long Check waits for goroutines to exit
	DefaultWait  = time.Second
)

// GoroutineChecker records a goroutine baseline and later asserts the count
// returned to it
type GoroutineChecker struct {
	t      testing.TB
	before int
	wait   time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		t:      t,
		before: runtime.NumGoroutine(),
		wait:   DefaultWait,
	}
}

// WithWait overrides how long Check polls before failing
func (g *GoroutineChecker) WithWait(d time.Duration) *GoroutineChecker {
	g.wait = d
	return g
}

// Check polls until at most tolerance goroutines above the baseline remain,
// failing the test once the wait elapses
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	if leaked, ok := settle(g.before+tolerance, g.wait); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d",
			g.before, leaked, tolerance)
	}
}

// Run executes fn and asserts it left no goroutines behind
func Run(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines blocks until the goroutine count drops to target
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if current, ok := settle(target, timeout); !ok {
		t.Errorf("timed out waiting for goroutines: current=%d target=%d", current, target)
	}
}

func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
