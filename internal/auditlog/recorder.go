package auditlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketgrid/internal/domain"
	"ticketgrid/internal/eventbus"
)

// queueSize is how many tickets may wait for the writer before Record blocks
const queueSize = 1024

// Appender is the write side of the ticket log
type Appender interface {
	Append(ctx context.Context, seq uint64, data string) error
}

// Recorder writes minted tickets into the ticket log from its own goroutine.
// Tickets are handed over by Record, not through the event bus, so a full bus
// never costs a log row. Failures are logged and published; they never reach
// the selection logic.
type Recorder struct {
	log     Appender
	bus     eventbus.EventBus
	runID   string
	timeout time.Duration
	queue   chan domain.Ticket
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
}

// NewRecorder starts a recorder writing to log. bus receives AuditFailed
// events and may be nil.
func NewRecorder(log Appender, bus eventbus.EventBus) *Recorder {
	r := &Recorder{
		log:     log,
		bus:     bus,
		runID:   uuid.NewString(),
		timeout: 2 * time.Second,
		queue:   make(chan domain.Ticket, queueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// RunID identifies this process run in the data column
func (r *Recorder) RunID() string {
	return r.runID
}

// Record queues t for writing. It blocks only while the queue is full.
// Tickets recorded after Close are dropped with a warning.
func (r *Recorder) Record(t domain.Ticket) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		slog.Warn("auditlog: ticket recorded after close", "seq", t.Seq)
		return
	}
	r.queue <- t
}

func (r *Recorder) run() {
	defer close(r.done)
	for t := range r.queue {
		r.write(t)
	}
}

func (r *Recorder) write(t domain.Ticket) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.log.Append(ctx, t.Seq, r.runID); err != nil {
		slog.Error("auditlog: failed to record ticket", "seq", t.Seq, "err", err)
		if r.bus != nil {
			r.bus.Publish(eventbus.AuditFailedEvent{Seq: t.Seq, Err: err})
		}
	}
}

// Close stops accepting tickets and waits until the queued ones are written
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	<-r.done
}
