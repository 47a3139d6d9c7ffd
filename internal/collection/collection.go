package collection

import (
	"log/slog"
	"math"

	"ticketgrid/internal/domain"
)

// Collection is an ordered list of tickets with a selection flag per ticket and
// an optional pending range anchor.
//
// A Collection is not safe for concurrent use. It is owned by the UI event loop
// and every call, including feed inserts, happens on that goroutine.
type Collection struct {
	items  []domain.Ticket
	anchor *anchor
	pub    Publisher
}

// New creates an empty collection. pub may be nil.
func New(pub Publisher) *Collection {
	return &Collection{pub: pub}
}

// Len returns the number of tickets
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the ticket at index
func (c *Collection) At(index int) (domain.Ticket, bool) {
	if !c.inBounds(index) {
		return domain.Ticket{}, false
	}
	return c.items[index], true
}

// Items returns a copy of the tickets in display order
func (c *Collection) Items() []domain.Ticket {
	out := make([]domain.Ticket, len(c.items))
	copy(out, c.items)
	return out
}

// Anchor returns the pending anchor index, if any
func (c *Collection) Anchor() (int, bool) {
	if c.anchor == nil {
		return -1, false
	}
	return c.anchor.index, true
}

// Append adds a ticket at the end
func (c *Collection) Append(t domain.Ticket) {
	t.Selected = false
	c.items = append(c.items, t)
}

// Prepend adds a ticket at the front. A pending anchor moves with its ticket.
func (c *Collection) Prepend(t domain.Ticket) {
	t.Selected = false
	c.items = append(c.items, domain.Ticket{})
	copy(c.items[1:], c.items)
	c.items[0] = t
	if c.anchor != nil {
		c.anchor.index++
	}
}

// ToggleOrAnchor handles one click on the ticket at index.
//
// A selected ticket is unselected and the anchor dropped. Otherwise the first
// click anchors a range and selects the ticket; the second click selects
// everything between the anchor and index.
func (c *Collection) ToggleOrAnchor(index int) Outcome {
	if !c.inBounds(index) {
		c.skip(index, "click outside collection")
		return Outcome{Kind: OutcomeSkipped, Index: index}
	}

	if c.items[index].Selected {
		c.items[index].Selected = false
		c.anchor = nil
		c.publish(domain.SelectionClearedEvent{Index: index, Count: 1})
		return Outcome{Kind: OutcomeCleared, Index: index}
	}

	if c.anchor == nil {
		c.items[index].Selected = true
		c.anchor = &anchor{index: index}
		pos := c.items[index].Position
		c.publish(domain.AnchorSetEvent{Index: index, Position: pos})
		return Outcome{Kind: OutcomeAnchored, Index: index, Position: pos}
	}

	begin := c.anchor.index
	res := c.SelectRange(begin, index, true)
	c.anchor = nil
	c.publish(domain.RangeSelectedEvent{Begin: begin, End: index, Count: res.Changed})
	return Outcome{Kind: OutcomeRange, Index: index, Begin: begin, End: index, Count: res.Changed}
}

// SelectRange sets the selection flag on every ticket in the inclusive range
// between begin and end, in either order. Out-of-bounds indices are skipped and
// reported. The anchor is left untouched.
func (c *Collection) SelectRange(begin, end int, selected bool) RangeResult {
	lo, hi := begin, end
	if lo > hi {
		lo, hi = hi, lo
	}

	res := RangeResult{Lo: lo, Hi: hi}
	n := len(c.items)

	// clip to [0, n) so the loop never walks the out-of-bounds part
	from, to := max(lo, 0), min(hi, n-1)
	for i := from; i <= to; i++ {
		c.items[i].Selected = selected
		res.Changed++
	}

	if lo < 0 {
		res.Skipped = saturatingAdd(res.Skipped, span(lo, min(hi, -1)))
	}
	if hi >= n {
		res.Skipped = saturatingAdd(res.Skipped, span(max(lo, n), hi))
	}

	if res.Skipped > 0 {
		first := lo
		if lo >= 0 {
			first = max(lo, n)
		}
		slog.Warn("collection: range outside bounds",
			"lo", lo, "hi", hi, "len", n, "skipped", res.Skipped)
		c.publish(domain.IndexSkippedEvent{Index: first, Count: res.Skipped, Length: n, Reason: "range outside collection"})
	}
	return res
}

// span counts the indices in [a, b] for a <= b. The full int range saturates.
func span(a, b int) uint64 {
	d := uint64(b) - uint64(a)
	if d == math.MaxUint64 {
		return d
	}
	return d + 1
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// ClearSelection unselects every ticket and drops the anchor.
// It returns the number of tickets that were selected.
func (c *Collection) ClearSelection() int {
	cleared := 0
	for i := range c.items {
		if c.items[i].Selected {
			c.items[i].Selected = false
			cleared++
		}
	}
	c.anchor = nil
	c.publish(domain.SelectionClearedEvent{Index: -1, Count: cleared})
	return cleared
}

// DeleteSelected removes every selected ticket, keeping the order of the rest.
// It returns the number of tickets removed.
func (c *Collection) DeleteSelected() int {
	var indices []int
	for i, t := range c.items {
		if t.Selected {
			indices = append(indices, i)
		}
	}

	// Highest first: removing index i never moves any index below i.
	for k := len(indices) - 1; k >= 0; k-- {
		c.removeAt(indices[k])
	}

	c.publish(domain.SelectionDeletedEvent{Count: len(indices)})
	return len(indices)
}

// CountSelected returns the number of selected tickets
func (c *Collection) CountSelected() int {
	n := 0
	for _, t := range c.items {
		if t.Selected {
			n++
		}
	}
	return n
}

// RemoveAt removes a single ticket regardless of its selection state
func (c *Collection) RemoveAt(index int) bool {
	if !c.inBounds(index) {
		c.skip(index, "remove outside collection")
		return false
	}
	t := c.items[index]
	c.removeAt(index)
	c.publish(domain.TicketRemovedEvent{Index: index, Ticket: t})
	return true
}

// removeAt deletes the ticket at index and keeps the anchor pointing at its
// ticket, or drops it when the anchored ticket itself is removed.
func (c *Collection) removeAt(index int) {
	c.items = append(c.items[:index], c.items[index+1:]...)
	if c.anchor == nil {
		return
	}
	switch {
	case c.anchor.index == index:
		c.anchor = nil
	case c.anchor.index > index:
		c.anchor.index--
	}
}

func (c *Collection) inBounds(index int) bool {
	return index >= 0 && index < len(c.items)
}

func (c *Collection) skip(index int, reason string) {
	slog.Warn("collection: index skipped", "index", index, "len", len(c.items), "reason", reason)
	c.publish(domain.IndexSkippedEvent{Index: index, Count: 1, Length: len(c.items), Reason: reason})
}

func (c *Collection) publish(event domain.DomainEvent) {
	if c.pub != nil {
		c.pub.Publish(event)
	}
}
