// Package config loads run settings: which scenarios a run targets and
// the per-scenario overrides applied before any execution starts.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/salvolabs/salvo/internal/load"
)

//go:embed schema.json
var runSettingsSchema string

// RunSettings is the run-level configuration resolved before any scenario
// executes.
type RunSettings struct {
	TestSuite        string            `json:"testSuite,omitempty" yaml:"testSuite,omitempty"`
	TestName         string            `json:"testName,omitempty" yaml:"testName,omitempty"`
	TargetScenarios  []string          `json:"targetScenarios,omitempty" yaml:"targetScenarios,omitempty"`
	ScenarioSettings []ScenarioSetting `json:"scenariosSettings,omitempty" yaml:"scenariosSettings,omitempty"`
}

// ScenarioSetting overrides one scenario by name. CustomSettings is kept
// as a raw JSON string; the init-context view parses it lazily and falls
// back to an empty view when it is not valid JSON.
type ScenarioSetting struct {
	ScenarioName   string `json:"scenarioName" yaml:"scenarioName"`
	WarmUpDuration string `json:"warmUpDuration,omitempty" yaml:"warmUpDuration,omitempty"`
	CustomSettings string `json:"customSettings,omitempty" yaml:"customSettings,omitempty"`
}

// Load reads run settings from path. JSON documents are validated against
// the embedded schema before decoding; YAML documents are decoded
// directly. Duration overrides are checked eagerly so a bad value refuses
// the run up front instead of surfacing mid-merge.
func Load(path string) (*RunSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run settings: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(data)
	case ".yaml", ".yml":
		return loadYAML(data)
	default:
		return nil, fmt.Errorf("unsupported run settings format: %q", filepath.Ext(path))
	}
}

func loadJSON(data []byte) (*RunSettings, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var rs RunSettings
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing run settings: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func loadYAML(data []byte) (*RunSettings, error) {
	var rs RunSettings
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing run settings: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// validateSchema checks a JSON document against the embedded run-settings
// schema.
func validateSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("run-settings.json", strings.NewReader(runSettingsSchema)); err != nil {
		return fmt.Errorf("invalid run settings schema: %w", err)
	}
	schema, err := compiler.Compile("run-settings.json")
	if err != nil {
		return fmt.Errorf("invalid run settings schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing run settings: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("run settings schema validation: %w", err)
	}
	return nil
}

func (rs *RunSettings) validate() error {
	for _, st := range rs.ScenarioSettings {
		if st.ScenarioName == "" {
			return fmt.Errorf("scenario setting with empty scenarioName")
		}
		if st.WarmUpDuration != "" {
			if _, err := time.ParseDuration(st.WarmUpDuration); err != nil {
				return fmt.Errorf("invalid warmUpDuration for scenario '%s': %w", st.ScenarioName, err)
			}
		}
	}
	return nil
}

// ToScenarioSettings converts the parsed overrides into the form the
// settings merger consumes. Replacement schedules are attached later by
// the load-simulation layer; this surface carries name, warm-up and
// custom settings only.
func (rs *RunSettings) ToScenarioSettings() []load.ScenarioSetting {
	out := make([]load.ScenarioSetting, 0, len(rs.ScenarioSettings))
	for _, st := range rs.ScenarioSettings {
		warmUp, _ := time.ParseDuration(st.WarmUpDuration) // checked in Load
		out = append(out, load.ScenarioSetting{
			ScenarioName:   st.ScenarioName,
			WarmUp:         warmUp,
			CustomSettings: st.CustomSettings,
		})
	}
	return out
}
