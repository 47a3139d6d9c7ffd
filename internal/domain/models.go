package domain

// Ticket is one entry in the ticket grid
type Ticket struct {
	UID      string   // display string derived from Seq
	Seq      uint64   // monotonic sequence number assigned by the feed
	Selected bool     // selection flag, false when minted
	Position Position // grid cell assigned at mint time
}

// Position is a grid cell. It has no meaning for selection.
type Position struct {
	Row int
	Col int
}

// InsertMode controls where the feed places new tickets
type InsertMode string

const (
	InsertAppend  InsertMode = "append"
	InsertPrepend InsertMode = "prepend"
)

// UIDFormat controls how sequence numbers are rendered as display UIDs
type UIDFormat string

const (
	UIDDecimal UIDFormat = "decimal"
	UIDHex     UIDFormat = "hex"
)
