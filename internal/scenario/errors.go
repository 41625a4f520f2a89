package scenario

import "fmt"

// EmptyNameError reports a save attempt with a blank or whitespace-only name.
type EmptyNameError struct{}

func (e *EmptyNameError) Error() string {
	return "scenario name must not be empty"
}

// InsufficientSelectionError reports a comparison with fewer than two scenarios.
type InsufficientSelectionError struct {
	Selected int
}

func (e *InsufficientSelectionError) Error() string {
	return fmt.Sprintf("comparison requires at least 2 scenarios, got %d", e.Selected)
}

// UnknownScenarioError reports a comparison naming a scenario that was never saved.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("no saved scenario named %q", e.Name)
}
