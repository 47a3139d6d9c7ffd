package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ClickAction toggles the ticket at Index or uses it as a range endpoint
type ClickAction struct {
	Index int
}

func (a ClickAction) Type() string { return "click" }

// Selection commands

type CleanupSelectionAction struct{}

func (a CleanupSelectionAction) Type() string { return "cleanup_selection" }

type DeleteSelectionAction struct{}

func (a DeleteSelectionAction) Type() string { return "delete_selection" }

type CountSelectedAction struct{}

func (a CountSelectedAction) Type() string { return "count_selected" }

// RemoveTicketAction removes one ticket whatever its selection state
type RemoveTicketAction struct {
	Index int
}

func (a RemoveTicketAction) Type() string { return "remove_ticket" }

// Feed control
type ToggleFeedAction struct{}

func (a ToggleFeedAction) Type() string { return "toggle_feed" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

type CancelAction struct {
	Message string
}

func (a CancelAction) Type() string { return "cancel" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
