package run

import (
	"fmt"
	"time"
)

// Phase identifies which execution period a measurement belongs to.
type Phase int

const (
	// PhaseWarmUp is the preliminary period whose measurements are not
	// counted toward final statistics.
	PhaseWarmUp Phase = iota
	// PhaseBombing is the main load-generation period.
	PhaseBombing
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmUp:
		return "warm_up"
	case PhaseBombing:
		return "bombing"
	default:
		return "unknown"
	}
}

// ScenarioInfo identifies one virtual user for the lifetime of a run step.
// It is read-only once handed to the running goroutine.
type ScenarioInfo struct {
	// ThreadID is "{scenarioName}_{threadNumber}".
	ThreadID     string
	ThreadNumber int
	ScenarioName string
	// Duration is the scenario's duration for the current phase.
	Duration time.Duration
	Phase    Phase
}

// NewScenarioInfo builds the identity for one virtual user of a scenario.
func NewScenarioInfo(scenarioName string, threadNumber int, duration time.Duration, phase Phase) ScenarioInfo {
	return ScenarioInfo{
		ThreadID:     fmt.Sprintf("%s_%d", scenarioName, threadNumber),
		ThreadNumber: threadNumber,
		ScenarioName: scenarioName,
		Duration:     duration,
		Phase:        phase,
	}
}
