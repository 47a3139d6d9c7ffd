package feed

import (
	"fmt"
	"strconv"

	"ticketgrid/internal/collection"
	"ticketgrid/internal/domain"
)

// Options configures a Feed
type Options struct {
	Columns  int              // grid width used for positions, at least 1
	Format   domain.UIDFormat // how sequence numbers are rendered
	Mode     domain.InsertMode
	FirstSeq uint64 // sequence number of the first minted ticket
}

// Feed mints tickets with strictly increasing sequence numbers.
//
// The counter is confined to the goroutine that calls Next. The UI drives it
// from its update loop so no synchronization is needed.
type Feed struct {
	opts    Options
	next    uint64
	pos     domain.Position
	running bool
}

// New creates a stopped feed
func New(opts Options) (*Feed, error) {
	if opts.Columns < 1 {
		return nil, fmt.Errorf("feed: columns must be positive, got %d", opts.Columns)
	}
	switch opts.Format {
	case "":
		opts.Format = domain.UIDDecimal
	case domain.UIDDecimal, domain.UIDHex:
	default:
		return nil, fmt.Errorf("feed: unknown uid format %q", opts.Format)
	}
	switch opts.Mode {
	case "":
		opts.Mode = domain.InsertAppend
	case domain.InsertAppend, domain.InsertPrepend:
	default:
		return nil, fmt.Errorf("feed: unknown insert mode %q", opts.Mode)
	}
	return &Feed{opts: opts, next: opts.FirstSeq}, nil
}

// Next mints the next ticket and advances the counter and grid cursor
func (f *Feed) Next() domain.Ticket {
	t := domain.Ticket{
		UID:      FormatUID(f.next, f.opts.Format),
		Seq:      f.next,
		Position: f.pos,
	}

	if f.pos.Col == f.opts.Columns-1 {
		f.pos.Row++
		f.pos.Col = 0
	} else {
		f.pos.Col++
	}
	f.next++
	return t
}

// Insert places t into c according to the insert mode
func (f *Feed) Insert(c *collection.Collection, t domain.Ticket) {
	if f.opts.Mode == domain.InsertPrepend {
		c.Prepend(t)
		return
	}
	c.Append(t)
}

// Minted returns how many tickets have been minted
func (f *Feed) Minted() uint64 {
	return f.next - f.opts.FirstSeq
}

// Mode returns the insert mode
func (f *Feed) Mode() domain.InsertMode {
	return f.opts.Mode
}

// Start resumes minting. It reports whether the state changed.
func (f *Feed) Start() bool {
	if f.running {
		return false
	}
	f.running = true
	return true
}

// Stop halts future minting. It reports whether the state changed.
func (f *Feed) Stop() bool {
	if !f.running {
		return false
	}
	f.running = false
	return true
}

// Toggle flips between running and stopped and returns the new state
func (f *Feed) Toggle() bool {
	if f.running {
		f.Stop()
	} else {
		f.Start()
	}
	return f.running
}

// Running reports whether the feed is minting
func (f *Feed) Running() bool {
	return f.running
}

// FormatUID renders a sequence number as a display uid
func FormatUID(seq uint64, format domain.UIDFormat) string {
	if format == domain.UIDHex {
		return fmt.Sprintf("%04x", seq)
	}
	return strconv.FormatUint(seq, 10)
}
