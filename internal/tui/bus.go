package tui

const (
	topicStatusInfo       = "Status:Info"
	topicStatusError      = "Status:Error"
	topicCatalogLoaded    = "Catalog:Loaded"
	topicSelectionChanged = "Selection:Changed"
	topicWorkflowProgress = "Workflow:Progress"
	topicWorkflowFinished = "Workflow:Finished"
)

// EventBus connects the pages without them knowing about each other.
// Publish and Subscribe are only called from the UI goroutine.
type EventBus struct {
	subscribers map[string][]EventBusEventCallback
}

type EventBusEventCallback func(data interface{})

func (bus *EventBus) Publish(name string, data interface{}) {
	for _, v := range bus.subscribers[name] {
		v(data)
	}
}

func (bus *EventBus) Subscribe(name string, callback EventBusEventCallback) {
	bus.subscribers[name] = append(bus.subscribers[name], callback)
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventBusEventCallback),
	}
}
