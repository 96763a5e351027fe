package events

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logger.With().Str("component", "EventBus").Logger(),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(listener EventListener, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		b.listeners[eventType] = append(b.listeners[eventType], listener)
		b.sortLocked(eventType)

		b.logger.Debug().
			Str("listener", listener.ID()).
			Str("event", string(eventType)).
			Int("priority", listener.Priority()).
			Msg("Subscribed listener")
	}
}

// Unsubscribe removes a listener from every event type it is registered for
func (b *Bus) Unsubscribe(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, listeners := range b.listeners {
		kept := listeners[:0]
		for _, l := range listeners {
			if l.ID() != listenerID {
				kept = append(kept, l)
			}
		}
		if len(kept) == len(listeners) {
			continue
		}
		b.listeners[eventType] = kept
		b.logger.Debug().Str("listener", listenerID).Str("event", string(eventType)).Msg("Unsubscribed listener")
	}
}

// Emit sends an event to all registered listeners in priority order.
// The first listener error stops propagation.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	b.logger.Trace().Str("event", string(event.GetType())).Int("listeners", len(listeners)).Msg("Emitting event")

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	b.logger.Debug().Msg("Cleared all listeners")
}

func (b *Bus) sortLocked(eventType EventType) {
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})
}
