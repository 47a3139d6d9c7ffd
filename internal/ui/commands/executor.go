package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/collection"
	"ticketgrid/internal/eventbus"
	"ticketgrid/internal/feed"
	"ticketgrid/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, tickets *collection.Collection, f *feed.Feed, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:   state,
			Tickets: tickets,
			Feed:    f,
			Bus:     bus,
		},
	}
}

// SetRecorder hands every minted ticket to r
func (e *Executor) SetRecorder(r TicketRecorder) {
	e.ctx.Recorder = r
}

// ExecuteClick creates and executes a click command
func (e *Executor) ExecuteClick(index int) tea.Cmd {
	return NewClickCommand(e.ctx, index).Execute()
}

// ExecuteCleanupSelection creates and executes a cleanup selection command
func (e *Executor) ExecuteCleanupSelection() tea.Cmd {
	return NewCleanupSelectionCommand(e.ctx).Execute()
}

// ExecuteDeleteSelection creates and executes a delete selection command
func (e *Executor) ExecuteDeleteSelection() tea.Cmd {
	return NewDeleteSelectionCommand(e.ctx).Execute()
}

// ExecuteCountSelected creates and executes a count selected command
func (e *Executor) ExecuteCountSelected() tea.Cmd {
	return NewCountSelectedCommand(e.ctx).Execute()
}

// ExecuteRemoveTicket creates and executes a remove ticket command
func (e *Executor) ExecuteRemoveTicket(index int) tea.Cmd {
	return NewRemoveTicketCommand(e.ctx, index).Execute()
}

// ExecuteMint creates and executes a mint command
func (e *Executor) ExecuteMint() tea.Cmd {
	return NewMintCommand(e.ctx).Execute()
}

// ExecuteToggleFeed creates and executes a toggle feed command
func (e *Executor) ExecuteToggleFeed(resume func() tea.Cmd) tea.Cmd {
	return NewToggleFeedCommand(e.ctx, resume).Execute()
}
