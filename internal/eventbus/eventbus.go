package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"ticketgrid/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventTicketMinted     = domain.EventTicketMinted
	EventAnchorSet        = domain.EventAnchorSet
	EventRangeSelected    = domain.EventRangeSelected
	EventSelectionCleared = domain.EventSelectionCleared
	EventSelectionDeleted = domain.EventSelectionDeleted
	EventSelectionCounted = domain.EventSelectionCounted
	EventIndexSkipped     = domain.EventIndexSkipped
	EventTicketRemoved    = domain.EventTicketRemoved
	EventFeedStarted      = domain.EventFeedStarted
	EventFeedStopped      = domain.EventFeedStopped
	EventAuditFailed      = domain.EventAuditFailed
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type TicketMintedEvent = domain.TicketMintedEvent
type AnchorSetEvent = domain.AnchorSetEvent
type RangeSelectedEvent = domain.RangeSelectedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type SelectionDeletedEvent = domain.SelectionDeletedEvent
type SelectionCountedEvent = domain.SelectionCountedEvent
type IndexSkippedEvent = domain.IndexSkippedEvent
type TicketRemovedEvent = domain.TicketRemovedEvent
type FeedStartedEvent = domain.FeedStartedEvent
type FeedStoppedEvent = domain.FeedStoppedEvent
type AuditFailedEvent = domain.AuditFailedEvent
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

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	return NewWithBuffer(1000)
}

// NewWithBuffer creates an event bus whose queue holds size events before dropping
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

// Publish queues an event for all subscribers. It never blocks.
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventTicketMinted:
		// too frequent to log
	default:
		slog.Debug("eventbus: publishing", "event", event.Type())
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("eventbus: channel full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
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

// Close stops the dispatcher. Queued events are discarded.
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
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("eventbus: handler panic", "event", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
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
