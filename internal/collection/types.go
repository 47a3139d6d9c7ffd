package collection

import "ticketgrid/internal/domain"

// Publisher receives domain events describing collection changes
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// OutcomeKind is what a click did to the selection
type OutcomeKind int

const (
	OutcomeSkipped  OutcomeKind = iota // index out of bounds, nothing changed
	OutcomeCleared                     // a selected ticket was unselected, anchor dropped
	OutcomeAnchored                    // first endpoint of a range chosen
	OutcomeRange                       // range completed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCleared:
		return "cleared"
	case OutcomeAnchored:
		return "anchored"
	case OutcomeRange:
		return "range"
	default:
		return "skipped"
	}
}

// Outcome reports the result of ToggleOrAnchor
type Outcome struct {
	Kind     OutcomeKind
	Index    int
	Position domain.Position // set for OutcomeAnchored
	Begin    int             // set for OutcomeRange
	End      int             // set for OutcomeRange
	Count    int             // range size for OutcomeRange
}

// RangeResult reports the result of SelectRange
type RangeResult struct {
	Lo      int
	Hi      int
	Changed int    // in-bounds indices that were written
	Skipped uint64 // out-of-bounds indices, saturating at math.MaxUint64
}

// anchor is the pending start of a range selection. Inserts and removals keep
// index pointing at the anchored ticket.
type anchor struct {
	index int
}
