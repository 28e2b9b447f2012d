package events

import (
	"sync"
	"time"
)

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed notification emitted by a state-changing entry point.
// Events are the core's only observability channel; indexers, the websocket
// hub and the API layer subscribe to derive their own views.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
	EmittedAt  time.Time   `json:"emitted_at"`
}

// NewAttribute creates an event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// NewEvent creates an event of the given type.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{
		Type:       eventType,
		Attributes: attrs,
		EmittedAt:  time.Now().UTC(),
	}
}

// Attribute returns the value for key and whether it was present.
func (e Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

type subscriber struct {
	ch chan Event
}

// Manager fans emitted events out to subscribers. Emission never blocks a
// state transition: a subscriber that falls behind has events dropped rather
// than stalling the emitting keeper.
type Manager struct {
	mu   sync.RWMutex
	subs map[uint64]*subscriber
	next uint64
}

// NewManager creates an event manager with no subscribers.
func NewManager() *Manager {
	return &Manager{subs: make(map[uint64]*subscriber)}
}

// EmitEvent delivers the event to every current subscriber.
func (m *Manager) EmitEvent(e Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		select {
		case s.ch <- e:
		default:
			// slow subscriber, drop
		}
	}
}

// Subscribe registers a new subscriber with the given channel buffer size.
// The returned cancel func removes the subscription and closes the channel.
func (m *Manager) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	s := &subscriber{ch: make(chan Event, buffer)}

	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = s
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(s.ch)
		}
		m.mu.Unlock()
	}
	return s.ch, cancel
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}
