package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"ticketgrid/internal/domain"
	"ticketgrid/internal/ui/input/types"
	"ticketgrid/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Tickets        []domain.Ticket
	Columns        int
	Cursor         int
	Anchor         int
	HasAnchor      bool
	SelectedCount  int
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	StatusKind     state.StatusKind
	Prompt         string
	FeedRunning    bool
	Minted         uint64
	AuditFailures  int
	ShowHelp       bool
	ShowPositions  bool
	HelpModel      help.Model
	Keys           types.KeyMap
}

// Layout returns the grid geometry for this view state
func (vs ViewState) Layout() Layout {
	return NewLayout(vs.Tickets, vs.Columns, vs.ViewportOffset, vs.ViewportHeight)
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.ShowHelp {
		h := vs.HelpModel
		h.ShowAll = true
		h.Width = 0
		body := r.styles.Title.Render("ticketgrid help") + "\n\n" + h.View(vs.Keys)
		return r.popupRender.RenderPopup(body, vs.Height, vs.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")

	if vs.Prompt != "" {
		content.WriteString(r.styles.Confirm.Render(vs.Prompt))
	}
	content.WriteString("\n")

	layout := vs.Layout()
	gridLines := 0
	if len(vs.Tickets) == 0 {
		content.WriteString(r.styles.Dim.Render("Waiting for tickets..."))
		gridLines = 1
	} else {
		content.WriteString(r.renderGrid(layout, vs))
		gridLines = layout.VisibleRows
	}

	// push the footer to the bottom of the grid area
	if pad := vs.ViewportHeight - gridLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}

	content.WriteString("\n\n")
	content.WriteString(r.renderStatus(vs))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(vs.HelpModel.ShortHelpView(vs.Keys.ShortHelp())))

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitle renders the logo with the feed indicator right-aligned
func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("ticketgrid")

	var indicator string
	if vs.FeedRunning {
		indicator = r.styles.Running.Render(fmt.Sprintf("● feed %d", vs.Minted))
	} else {
		indicator = r.styles.Paused.Render(fmt.Sprintf("‖ paused %d", vs.Minted))
	}

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2*mainPadLeft - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

// renderStatus renders the status message and the selection counters
func (r *Renderer) renderStatus(vs ViewState) string {
	parts := []string{
		fmt.Sprintf("tickets %d", len(vs.Tickets)),
		fmt.Sprintf("selected %d", vs.SelectedCount),
	}
	if vs.HasAnchor {
		parts = append(parts, fmt.Sprintf("anchor %d", vs.Anchor))
	}
	if vs.AuditFailures > 0 {
		parts = append(parts, fmt.Sprintf("audit errors %d", vs.AuditFailures))
	}
	if vs.ShowPositions && vs.Cursor >= 0 && vs.Cursor < len(vs.Tickets) {
		pos := vs.Tickets[vs.Cursor].Position
		parts = append(parts, fmt.Sprintf("minted at %d,%d", pos.Row, pos.Col))
	}
	counters := r.styles.Dim.Render(strings.Join(parts, " | "))

	if vs.StatusMessage == "" {
		return counters
	}
	return r.styles.ForStatus(vs.StatusKind).Render(vs.StatusMessage) + "  " + counters
}
