package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return navigate("up"), true
	case key.Matches(msg, m.keys.Down):
		return navigate("down"), true
	case key.Matches(msg, m.keys.Left):
		return navigate("left"), true
	case key.Matches(msg, m.keys.Right):
		return navigate("right"), true
	case key.Matches(msg, m.keys.PageUp):
		return navigate("pageup"), true
	case key.Matches(msg, m.keys.PageDown):
		return navigate("pagedown"), true
	case key.Matches(msg, m.keys.Home):
		return navigate("home"), true
	case key.Matches(msg, m.keys.End):
		return navigate("end"), true

	case key.Matches(msg, m.keys.Click):
		if ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.ClickAction{Index: ctx.CurrentIndex()}}, true

	case key.Matches(msg, m.keys.Cleanup):
		return []types.Action{types.CleanupSelectionAction{}}, true

	case key.Matches(msg, m.keys.Delete):
		// Only ask when there is something to lose
		if ctx.ConfirmDelete() && ctx.HasSelection() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmDelete}}, true
		}
		return []types.Action{types.DeleteSelectionAction{}}, true

	case key.Matches(msg, m.keys.Count):
		return []types.Action{types.CountSelectedAction{}}, true

	case key.Matches(msg, m.keys.Remove):
		if ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.RemoveTicketAction{Index: ctx.CurrentIndex()}}, true

	case key.Matches(msg, m.keys.Feed):
		return []types.Action{types.ToggleFeedAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
