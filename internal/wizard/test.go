package wizard

import "time"

type scheduled struct {
	delay     time.Duration
	f         func()
	cancelled bool
}

// MockScheduler holds scheduled callbacks until Fire is called.
type MockScheduler struct {
	calls []*scheduled
}

func (m *MockScheduler) After(d time.Duration, f func()) func() {
	s := &scheduled{delay: d, f: f}
	m.calls = append(m.calls, s)
	return func() { s.cancelled = true }
}

// Pending returns the number of callbacks neither fired nor cancelled.
func (m *MockScheduler) Pending() int {
	n := 0
	for _, c := range m.calls {
		if !c.cancelled && c.f != nil {
			n++
		}
	}
	return n
}

func (m *MockScheduler) LastDelay() time.Duration {
	if len(m.calls) == 0 {
		return 0
	}
	return m.calls[len(m.calls)-1].delay
}

// Fire runs every pending callback.
func (m *MockScheduler) Fire() {
	for _, c := range m.calls {
		if c.cancelled || c.f == nil {
			continue
		}
		f := c.f
		c.f = nil
		f()
	}
}

// MockPresenter records every event.
type MockPresenter struct {
	Events []Event
	// OnEvent runs after an event is recorded.
	OnEvent func(e Event)
}

func (m *MockPresenter) Notify(e Event) {
	m.Events = append(m.Events, e)
	if m.OnEvent != nil {
		m.OnEvent(e)
	}
}

func (m *MockPresenter) Last() Event {
	if len(m.Events) == 0 {
		return Event{}
	}
	return m.Events[len(m.Events)-1]
}
