package load

import (
	"time"

	"github.com/salvolabs/salvo/internal/run"
)

// ScenarioDefinition is the author-supplied description of one workload.
// All operations are optional; a definition with no run operation must
// carry at least an init or a cleanup operation to have any observable
// effect.
type ScenarioDefinition struct {
	Name     string
	Init     run.InitFunc
	Run      run.RunFunc
	Clean    run.CleanFunc
	Schedule Schedule
	// WarmUp is the warm-up period; zero means the scenario skips the
	// warm-up phase.
	WarmUp time.Duration
	// ResetOnFail marks failed iterations for re-run instead of counting
	// them as failures.
	ResetOnFail bool
}

// Scenario is the validated runtime entity built from a definition.
//
// It is an immutable snapshot: settings merges and duration tracking
// return updated copies, they never mutate a value that concurrent
// readers may hold. All updates happen in sequential phases (setup,
// phase-end), never while virtual users are executing against it.
type Scenario struct {
	Name            string
	Init            run.InitFunc
	Run             run.RunFunc
	Clean           run.CleanFunc
	Timeline        Timeline
	WarmUp          time.Duration
	PlannedDuration time.Duration
	CustomSettings  string
	Enabled         bool
	Initialized     bool
	ResetOnFail     bool

	// executed stays absent until a phase completes.
	executed *time.Duration
}

// WithExecutedDuration records how long the scenario actually ran once a
// phase ends, clamped so the executed duration never exceeds the planned
// one. It returns an updated copy.
func (s Scenario) WithExecutedDuration(elapsed time.Duration) Scenario {
	if elapsed > s.PlannedDuration {
		elapsed = s.PlannedDuration
	}
	d := elapsed
	s.executed = &d
	return s
}

// ExecutedDuration returns the recorded executed duration. A scenario
// whose phase never completed is reported as having run its full planned
// duration.
func (s Scenario) ExecutedDuration() time.Duration {
	if s.executed != nil {
		return *s.executed
	}
	return s.PlannedDuration
}

// HasWarmUp reports whether the scenario takes part in the warm-up phase.
func (s Scenario) HasWarmUp() bool {
	return s.WarmUp > 0
}
