package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventTicketMinted     EventType = "TicketMinted"
	EventAnchorSet        EventType = "AnchorSet"
	EventRangeSelected    EventType = "RangeSelected"
	EventSelectionCleared EventType = "SelectionCleared"
	EventSelectionDeleted EventType = "SelectionDeleted"
	EventSelectionCounted EventType = "SelectionCounted"
	EventIndexSkipped     EventType = "IndexSkipped"
	EventTicketRemoved    EventType = "TicketRemoved"
	EventFeedStarted      EventType = "FeedStarted"
	EventFeedStopped      EventType = "FeedStopped"
	EventAuditFailed      EventType = "AuditFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TicketMintedEvent is emitted when the feed inserts a new ticket
type TicketMintedEvent struct {
	Ticket Ticket
}

func (e TicketMintedEvent) Type() EventType { return EventTicketMinted }

// AnchorSetEvent is emitted when the first endpoint of a range is chosen
type AnchorSetEvent struct {
	Index    int
	Position Position
}

func (e AnchorSetEvent) Type() EventType { return EventAnchorSet }

// RangeSelectedEvent is emitted when a range selection completes
type RangeSelectedEvent struct {
	Begin int
	End   int
	Count int // |End-Begin|+1
}

func (e RangeSelectedEvent) Type() EventType { return EventRangeSelected }

// SelectionClearedEvent is emitted when one or more tickets are unselected.
// Index is -1 when the whole selection was cleared.
type SelectionClearedEvent struct {
	Index int
	Count int
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// SelectionDeletedEvent is emitted after the selected tickets were removed
type SelectionDeletedEvent struct {
	Count int
}

func (e SelectionDeletedEvent) Type() EventType { return EventSelectionDeleted }

// SelectionCountedEvent carries the result of a count request
type SelectionCountedEvent struct {
	Count int
}

func (e SelectionCountedEvent) Type() EventType { return EventSelectionCounted }

// IndexSkippedEvent is a warning: Count indices starting at Index were out of
// bounds and ignored
type IndexSkippedEvent struct {
	Index  int
	Count  uint64
	Length int
	Reason string
}

func (e IndexSkippedEvent) Type() EventType { return EventIndexSkipped }

// TicketRemovedEvent is emitted when a single ticket is removed outside of a bulk delete
type TicketRemovedEvent struct {
	Index  int
	Ticket Ticket
}

func (e TicketRemovedEvent) Type() EventType { return EventTicketRemoved }

// FeedStartedEvent is emitted when the feed resumes minting
type FeedStartedEvent struct{}

func (e FeedStartedEvent) Type() EventType { return EventFeedStarted }

// FeedStoppedEvent is emitted when the feed stops minting
type FeedStoppedEvent struct {
	Minted uint64 // tickets minted so far
}

func (e FeedStoppedEvent) Type() EventType { return EventFeedStopped }

// AuditFailedEvent is emitted when the ticket log could not record a ticket
type AuditFailedEvent struct {
	Seq uint64
	Err error
}

func (e AuditFailedEvent) Type() EventType { return EventAuditFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
