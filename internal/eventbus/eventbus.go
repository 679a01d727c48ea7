package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"hackerstories/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchSubmitted = domain.EventSearchSubmitted
	EventFetchStarted    = domain.EventFetchStarted
	EventFetchSucceeded  = domain.EventFetchSucceeded
	EventFetchFailed     = domain.EventFetchFailed
	EventFetchDropped    = domain.EventFetchDropped
	EventStaleResponse   = domain.EventStaleResponse
	EventStoryRemoved    = domain.EventStoryRemoved
	EventTermPersisted   = domain.EventTermPersisted
	EventError           = domain.EventError
)

// EventTypes lists every event type the application publishes
var EventTypes = []EventType{
	EventSearchSubmitted,
	EventFetchStarted,
	EventFetchSucceeded,
	EventFetchFailed,
	EventFetchDropped,
	EventStaleResponse,
	EventStoryRemoved,
	EventTermPersisted,
	EventError,
}

// Re-export domain event types
type SearchSubmittedEvent = domain.SearchSubmittedEvent
type FetchStartedEvent = domain.FetchStartedEvent
type FetchSucceededEvent = domain.FetchSucceededEvent
type FetchFailedEvent = domain.FetchFailedEvent
type FetchDroppedEvent = domain.FetchDroppedEvent
type StaleResponseEvent = domain.StaleResponseEvent
type StoryRemovedEvent = domain.StoryRemovedEvent
type TermPersistedEvent = domain.TermPersistedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// New creates a new event bus. A nil logger discards bus diagnostics.
func New(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers without blocking the caller
func (b *bus) Publish(event DomainEvent) {
	b.logger.Debug("eventbus: publishing", "event", event.Type())

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("eventbus: channel full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and waits for it to exit. Pending events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// Handlers run on their own goroutine so a slow subscriber
				// cannot stall the dispatcher
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.logger.Error("eventbus: handler panic", "event", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// LogEvents subscribes logger to every event type. Events are logged at
// debug level. The returned function removes the subscriptions.
func LogEvents(b EventBus, logger *slog.Logger) func() {
	unsubscribes := make([]func(), 0, len(EventTypes))
	for _, eventType := range EventTypes {
		unsubscribes = append(unsubscribes, b.Subscribe(eventType, func(e DomainEvent) {
			logger.Debug("event", "type", e.Type(), "event", e)
		}))
	}
	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}
