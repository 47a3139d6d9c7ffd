package eventbus

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer guards a bytes.Buffer written from handler goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(w *lockedBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestJournalHoldsEventsUntilAttached(t *testing.T) {
	b := New()
	defer b.Close()

	j := NewJournal(b)
	defer j.Close()

	b.Publish(ConfigLoadedEvent{Path: "/tmp/config.toml"})
	b.Publish(ConfigSavedEvent{Path: "/tmp/config.toml"})

	require.Eventually(t, func() bool {
		j.mu.Lock()
		defer j.mu.Unlock()
		return len(j.pending) == 2
	}, time.Second, 5*time.Millisecond)

	var out lockedBuffer
	j.Attach(newTestLogger(&out))

	logged := out.String()
	assert.Contains(t, logged, "type=ConfigLoaded")
	assert.Contains(t, logged, "type=ConfigSaved")
}

func TestJournalLogsSelectionAndFeedEvents(t *testing.T) {
	b := New()
	defer b.Close()

	var out lockedBuffer
	j := NewJournal(b)
	defer j.Close()
	j.Attach(newTestLogger(&out))

	b.Publish(RangeSelectedEvent{Begin: 2, End: 5, Count: 4})
	b.Publish(FeedStoppedEvent{Minted: 9})
	b.Publish(IndexSkippedEvent{Index: 10, Count: 3, Length: 10, Reason: "range outside collection"})

	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "type=RangeSelected") &&
			strings.Contains(s, "type=FeedStopped") &&
			strings.Contains(s, "type=IndexSkipped")
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, out.String(), "level=WARN msg=event type=IndexSkipped index=10 count=3 len=10")
}

func TestJournalSkipsMintedTickets(t *testing.T) {
	assert.NotContains(t, JournaledEvents, EventTicketMinted)
}

func TestJournalCloseUnsubscribes(t *testing.T) {
	b := New()
	defer b.Close()

	var out lockedBuffer
	j := NewJournal(b)
	j.Attach(newTestLogger(&out))
	j.Close()

	b.Publish(FeedStartedEvent{})
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, out.String())
}

func TestJournalBoundsPendingEvents(t *testing.T) {
	j := &Journal{}
	for i := 0; i < maxPending+5; i++ {
		j.handle(FeedStartedEvent{})
	}
	assert.Len(t, j.pending, maxPending)

	var out lockedBuffer
	j.Attach(newTestLogger(&out))
	assert.Contains(t, out.String(), "count=5")
	assert.Nil(t, j.pending)
}
