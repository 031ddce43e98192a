package pubsub

import (
	"sync"
)

// Wildcard subscribers receive events for every topic.
const Wildcard = "*"

// Event is a state change broadcast to in-process listeners.
type Event struct {
	Topic string
	Kind  string
	Data  any
}

// Hub fans events out to buffered subscriber channels keyed by topic.
type Hub struct {
	mu          sync.RWMutex
	buffer      int
	subscribers map[string]map[chan Event]struct{}
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		buffer:      buffer,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for topic and returns its channel together
// with a cancel func that unregisters and closes it.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}
	return ch, cancel
}

// Publish delivers event to the topic's subscribers and to wildcard
// subscribers. Full channels are skipped so a slow reader never blocks
// the publisher.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(subs map[chan Event]struct{}) {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
	deliver(h.subscribers[event.Topic])
	if event.Topic != Wildcard {
		deliver(h.subscribers[Wildcard])
	}
}

func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
