package helpers

import (
	"fmt"
	"runtime"
	"time"
)

// GoroutineSnapshot captures the state of goroutines at a point in time
type GoroutineSnapshot struct {
	Count     int
	Timestamp time.Time
}

// TakeGoroutineSnapshot captures current goroutine count
func TakeGoroutineSnapshot() *GoroutineSnapshot {
	return &GoroutineSnapshot{
		Count:     runtime.NumGoroutine(),
		Timestamp: time.Now(),
	}
}

// WaitForGoroutineCleanup waits until the goroutine count is within tolerance
// of before, forcing GC between checks
func WaitForGoroutineCleanup(before *GoroutineSnapshot, tolerance int, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		if runtime.NumGoroutine()-before.Count <= tolerance {
			return nil
		}
		runtime.GC()
		time.Sleep(50 * time.Millisecond)
	}

	final := runtime.NumGoroutine()
	return fmt.Errorf("goroutine leak detected: started with %d, ended with %d (tolerance %d)",
		before.Count, final, tolerance)
}
