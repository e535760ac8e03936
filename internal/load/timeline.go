// Package load holds the scenario lifecycle of the engine: author-supplied
// definitions, validation, building into immutable runtime scenarios,
// runtime overrides, executed-duration tracking and the phase selectors.
package load

import "time"

// Schedule is a load-simulation schedule. The lifecycle core treats it as
// opaque; only the timeline resolver knows how to interpret it.
type Schedule any

// Timeline is a resolved schedule together with the total planned
// duration it implies.
type Timeline struct {
	Schedule        Schedule
	PlannedDuration time.Duration
}

// ResolveTimeline converts a schedule into a concrete timeline. It is
// supplied by the load-simulation layer; a resolver failure aborts
// scenario construction before anything is built.
type ResolveTimeline func(schedule Schedule) (Timeline, error)
