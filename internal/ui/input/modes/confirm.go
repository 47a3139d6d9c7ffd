package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/ui/input/types"
)

// ConfirmMode asks before deleting the selected tickets
type ConfirmMode struct {
	keys    types.KeyMap
	pending int // selected count when the prompt opened
}

func NewConfirmMode(keys types.KeyMap) *ConfirmMode {
	return &ConfirmMode{keys: keys}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	m.pending = ctx.SelectedCount()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	m.pending = 0
	return nil
}

// Prompt returns the question shown while the mode is active
func (m *ConfirmMode) Prompt() string {
	return fmt.Sprintf("Delete %d selected tickets? (y/n)", m.pending)
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Yes):
		return []types.Action{
			types.DeleteSelectionAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case key.Matches(msg, m.keys.No):
		return []types.Action{
			types.CancelAction{Message: "Delete cancelled"},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Swallow everything else while the prompt is open
	return nil, true
}
