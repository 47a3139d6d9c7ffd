package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/collection"
	"ticketgrid/internal/domain"
	"ticketgrid/internal/eventbus"
	"ticketgrid/internal/feed"
	"ticketgrid/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// TicketRecorder persists minted tickets
type TicketRecorder interface {
	Record(t domain.Ticket)
}

// CommandContext provides context for command execution
type CommandContext struct {
	State    *state.AppState
	Tickets  *collection.Collection
	Feed     *feed.Feed
	Bus      eventbus.EventBus
	Recorder TicketRecorder // optional
}

func (c *CommandContext) publish(e eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(e)
	}
}

// ClickCommand toggles a ticket or uses it as a range endpoint
type ClickCommand struct {
	ctx   *CommandContext
	index int
}

// NewClickCommand creates a new click command
func NewClickCommand(ctx *CommandContext, index int) *ClickCommand {
	return &ClickCommand{ctx: ctx, index: index}
}

// Execute applies the click and reports the outcome on the status bar
func (c *ClickCommand) Execute() tea.Cmd {
	out := c.ctx.Tickets.ToggleOrAnchor(c.index)
	s := c.ctx.State

	switch out.Kind {
	case collection.OutcomeAnchored:
		s.SetStatus(state.StatusInfo, fmt.Sprintf("Anchor set at %d (row %d, col %d)",
			out.Index, out.Position.Row, out.Position.Col))
	case collection.OutcomeRange:
		s.SetStatus(state.StatusSuccess, fmt.Sprintf("Selected range of %d", out.Count))
	case collection.OutcomeCleared:
		s.SetStatus(state.StatusInfo, "Selection cleared")
	case collection.OutcomeSkipped:
		s.SetStatus(state.StatusWarning, fmt.Sprintf("No ticket at %d", out.Index))
	}
	return nil
}

// CleanupSelectionCommand unselects every ticket
type CleanupSelectionCommand struct {
	ctx *CommandContext
}

// NewCleanupSelectionCommand creates a new cleanup selection command
func NewCleanupSelectionCommand(ctx *CommandContext) *CleanupSelectionCommand {
	return &CleanupSelectionCommand{ctx: ctx}
}

// Execute clears the selection
func (c *CleanupSelectionCommand) Execute() tea.Cmd {
	n := c.ctx.Tickets.ClearSelection()
	c.ctx.State.SetStatus(state.StatusInfo, fmt.Sprintf("Cleared %d selected", n))
	return nil
}

// DeleteSelectionCommand removes the selected tickets
type DeleteSelectionCommand struct {
	ctx *CommandContext
}

// NewDeleteSelectionCommand creates a new delete selection command
func NewDeleteSelectionCommand(ctx *CommandContext) *DeleteSelectionCommand {
	return &DeleteSelectionCommand{ctx: ctx}
}

// Execute deletes the selection and keeps the cursor inside the grid
func (c *DeleteSelectionCommand) Execute() tea.Cmd {
	n := c.ctx.Tickets.DeleteSelected()
	c.ctx.State.ClampCursor(c.ctx.Tickets.Len())
	c.ctx.State.SetStatus(state.StatusSuccess, fmt.Sprintf("Deleted %d", n))
	return nil
}

// CountSelectedCommand reports the selection size
type CountSelectedCommand struct {
	ctx *CommandContext
}

// NewCountSelectedCommand creates a new count selected command
func NewCountSelectedCommand(ctx *CommandContext) *CountSelectedCommand {
	return &CountSelectedCommand{ctx: ctx}
}

// Execute counts the selection
func (c *CountSelectedCommand) Execute() tea.Cmd {
	n := c.ctx.Tickets.CountSelected()
	c.ctx.publish(eventbus.SelectionCountedEvent{Count: n})
	c.ctx.State.SetStatus(state.StatusInfo, fmt.Sprintf("Selected count %d", n))
	return nil
}

// RemoveTicketCommand removes a single ticket
type RemoveTicketCommand struct {
	ctx   *CommandContext
	index int
}

// NewRemoveTicketCommand creates a new remove ticket command
func NewRemoveTicketCommand(ctx *CommandContext, index int) *RemoveTicketCommand {
	return &RemoveTicketCommand{ctx: ctx, index: index}
}

// Execute removes the ticket at the command's index
func (c *RemoveTicketCommand) Execute() tea.Cmd {
	t, _ := c.ctx.Tickets.At(c.index)
	if !c.ctx.Tickets.RemoveAt(c.index) {
		c.ctx.State.SetStatus(state.StatusWarning, fmt.Sprintf("No ticket at %d", c.index))
		return nil
	}
	c.ctx.State.ClampCursor(c.ctx.Tickets.Len())
	c.ctx.State.SetStatus(state.StatusInfo, fmt.Sprintf("Removed ticket %s", t.UID))
	return nil
}

// MintCommand asks the feed for the next ticket and inserts it
type MintCommand struct {
	ctx *CommandContext
}

// NewMintCommand creates a new mint command
func NewMintCommand(ctx *CommandContext) *MintCommand {
	return &MintCommand{ctx: ctx}
}

// Execute mints one ticket. In prepend mode the cursor moves with the ticket
// it was on.
func (c *MintCommand) Execute() tea.Cmd {
	t := c.ctx.Feed.Next()
	c.ctx.Feed.Insert(c.ctx.Tickets, t)

	total := c.ctx.Tickets.Len()
	if c.ctx.Feed.Mode() == domain.InsertPrepend && total > 1 {
		c.ctx.State.SetCursor(c.ctx.State.Cursor+1, total)
	}

	if c.ctx.Recorder != nil {
		c.ctx.Recorder.Record(t)
	}
	c.ctx.publish(eventbus.TicketMintedEvent{Ticket: t})
	return nil
}

// ToggleFeedCommand pauses or resumes the feed
type ToggleFeedCommand struct {
	ctx    *CommandContext
	resume func() tea.Cmd
}

// NewToggleFeedCommand creates a new toggle feed command. resume schedules the
// next tick when the feed starts again.
func NewToggleFeedCommand(ctx *CommandContext, resume func() tea.Cmd) *ToggleFeedCommand {
	return &ToggleFeedCommand{ctx: ctx, resume: resume}
}

// Execute flips the feed state
func (c *ToggleFeedCommand) Execute() tea.Cmd {
	if c.ctx.Feed.Toggle() {
		c.ctx.publish(eventbus.FeedStartedEvent{})
		c.ctx.State.SetStatus(state.StatusInfo, "Feed running")
		if c.resume != nil {
			return c.resume()
		}
		return nil
	}
	c.ctx.publish(eventbus.FeedStoppedEvent{Minted: c.ctx.Feed.Minted()})
	c.ctx.State.SetStatus(state.StatusInfo, fmt.Sprintf("Feed stopped after %d tickets", c.ctx.Feed.Minted()))
	return nil
}
