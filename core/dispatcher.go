package core

import "errors"

var (
	ErrDispatcherStarted  = errors.New("dispatcher already initialized, cannot register tasks")
	ErrAlreadyInitialized = errors.New("dispatcher already initialized")
	ErrNilTask            = errors.New("task cannot be nil")
)

// Dispatcher holds the fixed, ordered task list for the super loop
type Dispatcher struct {
	tasks       []Task
	initialized bool
	passes      uint32
}

// NewDispatcher creates a dispatcher with the given tasks registered in order
func NewDispatcher(tasks ...Task) (*Dispatcher, error) {
	d := &Dispatcher{}
	for _, t := range tasks {
		if err := d.Register(t); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Register appends a task. Tasks can only be added before Initialize.
func (d *Dispatcher) Register(t Task) error {
	if t == nil {
		return ErrNilTask
	}
	if d.initialized {
		return ErrDispatcherStarted
	}
	d.tasks = append(d.tasks, t)
	return nil
}

// Initialize calls every task's Initialize exactly once, in registration order
func (d *Dispatcher) Initialize() error {
	if d.initialized {
		return ErrAlreadyInitialized
	}
	for i, t := range d.tasks {
		t.Initialize()
		if t.Faulted() {
			RecordTiming(EvtTaskFault, uint8(i), 0, 0, 0)
			DebugAsync("[TASK] " + t.Name() + " failed initialization")
		}
	}
	d.initialized = true
	return nil
}

// Initialized reports whether Initialize has run
func (d *Dispatcher) Initialized() bool {
	return d.initialized
}

// RunPass invokes each task's current state exactly once
func (d *Dispatcher) RunPass() {
	for _, t := range d.tasks {
		t.RunActiveState()
	}
	d.passes++
}

// Passes returns the number of completed scheduling passes
func (d *Dispatcher) Passes() uint32 {
	return d.passes
}

// Tasks returns the registered tasks in dispatch order
func (d *Dispatcher) Tasks() []Task {
	return d.tasks
}
