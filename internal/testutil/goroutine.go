package testutil

import (
	"runtime"
	"testing"
	"time"
)

const drainDeadline = 10 * time.Second

// AssertNoGoroutineLeaks polls until the goroutine count drops back to
// baseline+margin or the drain deadline passes.
func AssertNoGoroutineLeaks(t *testing.T, baseline, margin int) {
	t.Helper()
	deadline := time.Now().Add(drainDeadline)
	for {
		n := runtime.NumGoroutine()
		if n <= baseline+margin {
			return
		}
		if time.Now().After(deadline) {
			t.Errorf("expected at most %d goroutines after drain, got %d", baseline+margin, n)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}
