package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/ui/input/modes"
	"ticketgrid/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
}

func New(keys types.KeyMap) *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[types.ModeConfirmDelete] = modes.NewConfirmMode(keys)

	return h
}

// HandleKey routes a key to the current mode and applies mode changes.
// Mode changes are consumed here; every other action is returned.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		}
		h.currentMode = changeMode.Mode
		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
		}
	}

	return allActions
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// Prompt returns the active mode's prompt, if it has one
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return p.Prompt()
	}
	return ""
}

// Keys returns the key bindings the modes were built with
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
}
