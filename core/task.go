package core

// Task is one cooperative activity driven once per scheduling pass.
//
// Implementations keep an explicit state enum and switch on it in
// RunActiveState. A single invocation must not block and must finish well
// inside its share of the tick period.
type Task interface {
	// Name identifies the task in diagnostics
	Name() string

	// Initialize validates the task's tables and enters the first state.
	// On a configuration error the task enters its terminal error state.
	Initialize()

	// RunActiveState runs the current state exactly once
	RunActiveState()

	// Faulted reports whether the task is in its terminal error state
	Faulted() bool
}
