package load

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyScenarioName rejects a definition whose name is empty or
// whitespace-only.
var ErrEmptyScenarioName = errors.New("scenario name must not be empty")

// EmptyScenarioError rejects a definition that has no run operation and
// neither an init nor a cleanup operation.
type EmptyScenarioError struct {
	Name string
}

func (e *EmptyScenarioError) Error() string {
	return fmt.Sprintf("scenario '%s' has no run operation and no init or cleanup operation", e.Name)
}

// DuplicateScenarioNameError rejects a definition set in which a name
// appears more than once. Names lists each repeated name exactly once,
// sorted.
type DuplicateScenarioNameError struct {
	Names []string
}

func (e *DuplicateScenarioNameError) Error() string {
	return fmt.Sprintf("scenario names must be unique, duplicates: %s", strings.Join(e.Names, ", "))
}

// ValidateDefinition enforces the structural invariants of a single
// definition. Pure check: the definition is not transformed.
func ValidateDefinition(def ScenarioDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return ErrEmptyScenarioName
	}
	if def.Run == nil && def.Init == nil && def.Clean == nil {
		return &EmptyScenarioError{Name: def.Name}
	}
	return nil
}

// ValidateSet enforces name uniqueness across a whole definition set.
// Detection is order-independent: the error carries the set of repeated
// names, not the positions they appeared at.
func ValidateSet(defs []ScenarioDefinition) error {
	seen := make(map[string]int, len(defs))
	for _, def := range defs {
		seen[def.Name]++
	}

	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return &DuplicateScenarioNameError{Names: dups}
	}
	return nil
}
