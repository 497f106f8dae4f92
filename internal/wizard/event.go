package wizard

type EventType int

const (
	EventStageEntered EventType = iota
	EventTransitionRejected
	EventSessionRestored
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventStageEntered:
		return "stage-entered"
	case EventTransitionRejected:
		return "transition-rejected"
	case EventSessionRestored:
		return "session-restored"
	case EventReset:
		return "reset"
	}

	return "unknown"
}

type Event struct {
	Type  EventType
	Stage Stage
	// Err is set for EventTransitionRejected.
	Err error
}

// Presenter renders wizard events. The wizard never depends on how.
type Presenter interface {
	Notify(e Event)
}

type PresenterFunc func(e Event)

func (f PresenterFunc) Notify(e Event) {
	f(e)
}

type nopPresenter struct{}

func (nopPresenter) Notify(Event) {}
