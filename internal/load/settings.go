package load

import (
	"fmt"
	"time"
)

// ScenarioSetting is a per-scenario override supplied at run configuration
// time, matched to a scenario by exact name.
type ScenarioSetting struct {
	ScenarioName string
	// Schedule replaces the scenario's load-simulation schedule when
	// non-nil; nil keeps the existing timeline and planned duration.
	Schedule Schedule
	WarmUp   time.Duration
	// CustomSettings is the raw JSON override handed to init contexts.
	CustomSettings string
}

// Merger applies scenario settings onto already-built scenarios. It runs
// once after configuration is resolved, strictly before any execution
// begins.
type Merger struct {
	resolve ResolveTimeline
}

// NewMerger creates a Merger around the given timeline resolver.
func NewMerger(resolve ResolveTimeline) *Merger {
	return &Merger{resolve: resolve}
}

// Apply merges settings into scenarios by exact name match, at most one
// setting per scenario. Every replacement schedule is resolved up front:
// a resolver failure is returned before any merged scenario is produced.
// Once all resolutions succeed the merge itself is total — scenarios with
// no matching setting pass through unchanged, and an empty settings list
// returns the input field-for-field.
func (m *Merger) Apply(settings []ScenarioSetting, scenarios []Scenario) ([]Scenario, error) {
	byName := make(map[string]ScenarioSetting, len(settings))
	for _, st := range settings {
		if _, ok := byName[st.ScenarioName]; !ok {
			byName[st.ScenarioName] = st
		}
	}

	timelines := make(map[string]Timeline, len(byName))
	for name, st := range byName {
		if st.Schedule == nil {
			continue
		}
		timeline, err := m.resolve(st.Schedule)
		if err != nil {
			return nil, fmt.Errorf("resolving replacement timeline for scenario '%s': %w", name, err)
		}
		timelines[name] = timeline
	}

	merged := make([]Scenario, len(scenarios))
	for i, s := range scenarios {
		st, ok := byName[s.Name]
		if !ok {
			merged[i] = s
			continue
		}
		if timeline, ok := timelines[s.Name]; ok {
			s.Timeline = timeline
			s.PlannedDuration = timeline.PlannedDuration
		}
		s.WarmUp = st.WarmUp
		s.CustomSettings = st.CustomSettings
		merged[i] = s
	}
	return merged, nil
}
