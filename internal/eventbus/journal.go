package eventbus

import (
	"log/slog"
	"sync"
)

// maxPending bounds the events held before a logger is attached
const maxPending = 256

// JournaledEvents are the event types a Journal writes to the log.
// TicketMinted is left out; the audit log already records every mint.
var JournaledEvents = []EventType{
	EventAnchorSet,
	EventRangeSelected,
	EventSelectionCleared,
	EventSelectionDeleted,
	EventSelectionCounted,
	EventIndexSkipped,
	EventTicketRemoved,
	EventFeedStarted,
	EventFeedStopped,
	EventAuditFailed,
	EventConfigLoaded,
	EventConfigSaved,
}

// Journal writes bus events to a structured logger. Events that arrive
// before Attach are held and flushed once a logger is attached, so it can
// subscribe before the log destination is known.
type Journal struct {
	mu          sync.Mutex
	logger      *slog.Logger
	pending     []DomainEvent
	dropped     int
	unsubscribe []func()
}

// NewJournal subscribes a journal to every type in JournaledEvents.
func NewJournal(b EventBus) *Journal {
	j := &Journal{}
	for _, t := range JournaledEvents {
		j.unsubscribe = append(j.unsubscribe, b.Subscribe(t, j.handle))
	}
	return j
}

// Attach sets the destination logger and flushes held events.
func (j *Journal) Attach(logger *slog.Logger) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.logger = logger
	if j.dropped > 0 {
		logger.Warn("journal: events dropped before logging was ready", "count", j.dropped)
	}
	for _, e := range j.pending {
		write(logger, e)
	}
	j.pending = nil
	j.dropped = 0
}

// Close unsubscribes from the bus.
func (j *Journal) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, u := range j.unsubscribe {
		u()
	}
	j.unsubscribe = nil
}

func (j *Journal) handle(e DomainEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.logger == nil {
		if len(j.pending) >= maxPending {
			j.dropped++
			return
		}
		j.pending = append(j.pending, e)
		return
	}
	write(j.logger, e)
}

func write(logger *slog.Logger, e DomainEvent) {
	switch ev := e.(type) {
	case IndexSkippedEvent:
		logger.Warn("event", "type", ev.Type(), "index", ev.Index, "count", ev.Count, "len", ev.Length, "reason", ev.Reason)
	case AuditFailedEvent:
		logger.Warn("event", "type", ev.Type(), "event", ev)
	default:
		logger.Info("event", "type", e.Type(), "event", e)
	}
}
