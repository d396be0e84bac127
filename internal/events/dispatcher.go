package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event)
	Subscribe(eventType EventType, handler EventHandler)
}

// detachedDispatcher runs handlers on a separate goroutine so publishers never
// block on (or observe) handler outcomes. Handler errors are only logged.
type detachedDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	logger    *zap.Logger
}

// NewDetachedDispatcher creates a dispatcher instance.
func NewDetachedDispatcher(logger *zap.Logger) Dispatcher {
	return &detachedDispatcher{
		listeners: make(map[EventType][]EventHandler),
		logger:    logger,
	}
}

// Publish invokes handlers for the given event without waiting for them. The
// handlers get a fresh context since the request context may be canceled as
// soon as the response is written.
func (d *detachedDispatcher) Publish(_ context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	go func() {
		ctx := context.Background()
		for _, handler := range handlers {
			if err := handler(ctx, event); err != nil {
				d.logger.Warn("event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("repair_id", event.RepairID),
					zap.Error(err),
				)
			}
		}
	}()
}

// Subscribe registers a handler for the given event type.
func (d *detachedDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
