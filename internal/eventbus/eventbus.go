package eventbus

import (
	"runtime/debug"
	"sync"

	"sportseek/internal/domain"
	"sportseek/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchDispatched = domain.EventSearchDispatched
	EventIndexRequested   = domain.EventIndexRequested
	EventResultsChanged   = domain.EventResultsChanged
	EventNotification     = domain.EventNotification
	EventOptionsChanged   = domain.EventOptionsChanged
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type SearchDispatchedEvent = domain.SearchDispatchedEvent
type IndexRequestedEvent = domain.IndexRequestedEvent
type ResultsChangedEvent = domain.ResultsChangedEvent
type NotificationEvent = domain.NotificationEvent
type OptionsChangedEvent = domain.OptionsChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

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

// bus is the concrete implementation of EventBus. Handlers are invoked one at
// a time on the dispatcher goroutine, in publish order.
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus with the default buffer size
func New() EventBus {
	return NewWithBuffer(1000)
}

// NewWithBuffer creates a new event bus holding at most size pending events
func NewWithBuffer(size int) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, size),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers; it never blocks
func (b *bus) Publish(event DomainEvent) {
	log := logging.Component("eventbus")
	select {
	case <-b.quit:
		log.Debug().Str(logging.FieldEvent, string(event.Type())).Msg("bus closed, dropping event")
		return
	default:
	}

	select {
	case b.eventChan <- event:
		log.Trace().Str(logging.FieldEvent, string(event.Type())).Msg("published")
	default:
		log.Warn().Str(logging.FieldEvent, string(event.Type())).Msg("event bus channel full, dropping event")
	}
}

// Subscribe registers handler for eventType and returns an unsubscribe function
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

// Close delivers everything already queued, then stops the dispatcher
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			l := logging.Component("eventbus")
			l.Error().
				Str(logging.FieldEvent, string(event.Type())).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("event handler panic")
		}
	}()
	h(event)
}
