// Package run provides the per-iteration execution surface of the load
// engine: the shared run clock, the response model, execution contexts,
// and the measurement wrapper that times every invocation of a scenario's
// run operation.
package run

import "time"

// Clock is the monotonic time source shared by every measurement taken
// during one run. All timestamps the engine produces are read from the
// same Clock instance, so latencies from concurrent virtual users are
// directly comparable.
//
// Clock is read-only after creation and safe for concurrent use without
// synchronization.
type Clock struct {
	start time.Time
}

// NewClock starts a new run clock. The zero instant is the moment of the
// call; every timestamp in the run is measured from it.
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// ElapsedMillis returns the milliseconds elapsed since the clock started.
func (c *Clock) ElapsedMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// Elapsed returns the time elapsed since the clock started.
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}
