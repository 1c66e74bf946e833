package utilities

import "sync"

type EventHandler func(interface{})

// EventBus decouples the submission flow from post-issuance side effects
// (logging, archiving). Handlers run asynchronously; publishers never block.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[event] = append(eb.subscribers[event], handler)
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	handlers := append([]EventHandler(nil), eb.subscribers[event]...)
	eb.mu.RUnlock()

	for _, handler := range handlers {
		go handler(data)
	}
}

// Global instance shared across services.
var GlobalEventBus = NewEventBus()
