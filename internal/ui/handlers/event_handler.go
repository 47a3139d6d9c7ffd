package handlers

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/eventbus"
	"ticketgrid/internal/ui/state"
)

// EventHandler handles domain events that arrive from outside the update loop
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.AuditFailedEvent:
		h.state.AuditFailures++
		h.state.SetStatus(state.StatusError, fmt.Sprintf("Audit write failed for ticket %d: %v", e.Seq, e.Err))

	default:
		slog.Debug("ui: unhandled event", "type", event.Type())
	}
	return nil
}

// Forwarded lists the event types the UI wants delivered from the bus
func Forwarded() []eventbus.EventType {
	return []eventbus.EventType{
		eventbus.EventAuditFailed,
	}
}
