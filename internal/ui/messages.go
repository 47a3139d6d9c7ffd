package ui

import (
	"ticketgrid/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// feedTickMsg asks the model to mint the next ticket. gen identifies the tick
// loop that scheduled it; ticks from a loop that was replaced are dropped.
type feedTickMsg struct {
	gen int
}
