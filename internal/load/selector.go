package load

import "time"

// FilterTargetScenarios keeps the scenarios whose name appears in names,
// preserving the scenarios' order.
func FilterTargetScenarios(names []string, scenarios []Scenario) []Scenario {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var out []Scenario
	for _, s := range scenarios {
		if _, ok := wanted[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ForWarmUp keeps the scenarios that take part in the warm-up phase: a
// run operation plus a warm-up duration.
func ForWarmUp(scenarios []Scenario) []Scenario {
	var out []Scenario
	for _, s := range scenarios {
		if s.Run != nil && s.HasWarmUp() {
			out = append(out, s)
		}
	}
	return out
}

// ForBombing keeps the scenarios that take part in the main load phase:
// any scenario with a run operation, warm-up or not.
func ForBombing(scenarios []Scenario) []Scenario {
	var out []Scenario
	for _, s := range scenarios {
		if s.Run != nil {
			out = append(out, s)
		}
	}
	return out
}

// MaxDuration returns the longest planned duration across the scenarios.
// Callers guarantee a non-empty input; an empty one yields zero.
func MaxDuration(scenarios []Scenario) time.Duration {
	var max time.Duration
	for _, s := range scenarios {
		if s.PlannedDuration > max {
			max = s.PlannedDuration
		}
	}
	return max
}

// MaxWarmUpDuration returns the longest warm-up duration across the
// scenarios, ignoring those without one. Callers guarantee a non-empty
// input; an empty one yields zero.
func MaxWarmUpDuration(scenarios []Scenario) time.Duration {
	var max time.Duration
	for _, s := range scenarios {
		if s.WarmUp > max {
			max = s.WarmUp
		}
	}
	return max
}
