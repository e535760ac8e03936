package load

import "fmt"

// Builder turns definitions into runtime scenarios, resolving each
// definition's schedule through the timeline resolver.
type Builder struct {
	resolve ResolveTimeline
}

// NewBuilder creates a Builder around the given timeline resolver.
func NewBuilder(resolve ResolveTimeline) *Builder {
	return &Builder{resolve: resolve}
}

// Build resolves the definition's schedule to obtain a planned duration,
// validates the definition, and assembles the Scenario. A resolver
// failure is propagated without constructing anything.
func (b *Builder) Build(def ScenarioDefinition) (Scenario, error) {
	timeline, err := b.resolve(def.Schedule)
	if err != nil {
		return Scenario{}, fmt.Errorf("resolving timeline for scenario '%s': %w", def.Name, err)
	}
	if err := ValidateDefinition(def); err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Name:            def.Name,
		Init:            def.Init,
		Run:             def.Run,
		Clean:           def.Clean,
		Timeline:        timeline,
		WarmUp:          def.WarmUp,
		PlannedDuration: timeline.PlannedDuration,
		Enabled:         true,
		ResetOnFail:     def.ResetOnFail,
	}, nil
}

// BuildSet validates the whole set first, then builds each definition in
// order. The first failure aborts construction; a partial scenario set is
// never returned.
func (b *Builder) BuildSet(defs []ScenarioDefinition) ([]Scenario, error) {
	if err := ValidateSet(defs); err != nil {
		return nil, err
	}
	scenarios := make([]Scenario, 0, len(defs))
	for _, def := range defs {
		s, err := b.Build(def)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
