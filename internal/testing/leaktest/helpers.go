// Package leaktest verifies that components owning background goroutines,
// like the worker pool and the retention scheduler, actually drain them on
// Stop. A draw engine restarts rarely; a slow goroutine leak would go
// unnoticed for weeks without these checks.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settle gives the runtime a moment to park or reap goroutines before a
// count is taken, so checks do not flake on scheduler timing.
func settle(d time.Duration) {
	runtime.Gosched()
	time.Sleep(d)
}

// GoroutineChecker snapshots the goroutine count and compares against it
// after the code under test has run.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the baseline goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle(10 * time.Millisecond)
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlived the
// code under test. Pool workers and scheduler tickers must all be gone
// after Stop, so callers usually pass 0.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	settle(50 * time.Millisecond)
	runtime.GC()
	settle(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutines outlived shutdown: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// MemoryChecker snapshots heap usage so tests can assert that bounded
// structures, like the nonce cache and the rate limiter windows, stay
// bounded under churn.
type MemoryChecker struct {
	before uint64
	t      testing.TB
}

// NewMemoryChecker records the baseline heap allocation after a GC pass.
func NewMemoryChecker(t testing.TB) *MemoryChecker {
	t.Helper()
	runtime.GC()
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return &MemoryChecker{before: stats.HeapAlloc, t: t}
}

// Check fails the test when heap growth since the baseline exceeds
// maxGrowthMB megabytes. Transient garbage is collected first so only
// retained memory counts.
func (m *MemoryChecker) Check(maxGrowthMB float64) {
	m.t.Helper()

	runtime.GC()
	settle(10 * time.Millisecond)
	runtime.GC()

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	if stats.HeapAlloc <= m.before {
		return
	}
	growthMB := float64(stats.HeapAlloc-m.before) / (1 << 20)
	if growthMB > maxGrowthMB {
		m.t.Errorf("heap grew %.2fMB, limit %.2fMB (before=%d, after=%d)",
			growthMB, maxGrowthMB, m.before, stats.HeapAlloc)
	}
}

// CheckNoGoroutineLeak runs fn and fails if any goroutine it started is
// still alive afterwards.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// CheckNoMemoryLeak runs fn and fails if it retained more than
// maxGrowthMB megabytes of heap.
func CheckNoMemoryLeak(t *testing.T, maxGrowthMB float64, fn func()) {
	t.Helper()

	checker := NewMemoryChecker(t)
	fn()
	checker.Check(maxGrowthMB)
}

// WaitForGoroutines polls until the goroutine count drops to target or the
// timeout elapses. Useful when shutdown is asynchronous and the exact
// completion moment is not observable from the test.
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("goroutines did not drain in %v: current=%d, target=%d",
		timeout, runtime.NumGoroutine(), target)
}
