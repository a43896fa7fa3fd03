package core

import (
	"sync/atomic"
	"testing"
)

// mockTask records invocations in dispatch order
type mockTask struct {
	name    string
	faulty  bool
	inits   int
	runs    uint32
	faulted bool
	log     *[]string
	onRun   func()
}

func (m *mockTask) Name() string { return m.name }

func (m *mockTask) Initialize() {
	m.inits++
	m.faulted = m.faulty
}

func (m *mockTask) RunActiveState() {
	if m.faulted {
		return
	}
	atomic.AddUint32(&m.runs, 1)
	if m.log != nil {
		*m.log = append(*m.log, m.name)
	}
	if m.onRun != nil {
		m.onRun()
	}
}

func (m *mockTask) Faulted() bool { return m.faulted }

func (m *mockTask) Runs() uint32 { return atomic.LoadUint32(&m.runs) }

func TestDispatcherRunsEachTaskOncePerPass(t *testing.T) {
	var order []string
	a := &mockTask{name: "a", log: &order}
	b := &mockTask{name: "b", log: &order}
	c := &mockTask{name: "c", log: &order}

	d, err := NewDispatcher(a, b, c)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		d.RunPass()
	}

	expected := []string{"a", "b", "c", "a", "b", "c", "a", "b", "c"}
	if len(order) != len(expected) {
		t.Fatalf("Expected %d invocations, got %d", len(expected), len(order))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Invocation %d: expected %s, got %s", i, expected[i], order[i])
		}
	}
	if d.Passes() != 3 {
		t.Errorf("Expected 3 passes, got %d", d.Passes())
	}
}

func TestDispatcherInitializeOnce(t *testing.T) {
	a := &mockTask{name: "a"}
	d, _ := NewDispatcher(a)

	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := d.Initialize(); err != ErrAlreadyInitialized {
		t.Errorf("Expected ErrAlreadyInitialized, got %v", err)
	}
	if a.inits != 1 {
		t.Errorf("Expected task initialized once, got %d", a.inits)
	}
}

func TestDispatcherRegisterAfterInitialize(t *testing.T) {
	d, _ := NewDispatcher(&mockTask{name: "a"})
	_ = d.Initialize()

	if err := d.Register(&mockTask{name: "late"}); err != ErrDispatcherStarted {
		t.Errorf("Expected ErrDispatcherStarted, got %v", err)
	}
	if err := (&Dispatcher{}).Register(nil); err != ErrNilTask {
		t.Errorf("Expected ErrNilTask, got %v", err)
	}
}

func TestDispatcherFaultIsolated(t *testing.T) {
	ClearTimingRing()

	good := &mockTask{name: "good"}
	bad := &mockTask{name: "bad", faulty: true}

	d, _ := NewDispatcher(bad, good)
	_ = d.Initialize()

	for i := 0; i < 5; i++ {
		d.RunPass()
	}

	if bad.Runs() != 0 {
		t.Errorf("Faulted task should do nothing, ran %d times", bad.Runs())
	}
	if good.Runs() != 5 {
		t.Errorf("Healthy task should run every pass, ran %d times", good.Runs())
	}

	found := false
	for _, evt := range TimingEvents() {
		if evt.EventType == EvtTaskFault && evt.Task == 0 {
			found = true
		}
	}
	if !found {
		t.Error("Expected a TASK_FAULT timing event for task 0")
	}
}
