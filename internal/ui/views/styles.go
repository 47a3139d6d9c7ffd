package views

import (
	"github.com/charmbracelet/lipgloss"

	"ticketgrid/internal/ui/state"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	InfoBox       lipgloss.Style
	Cell          lipgloss.Style
	Selected      lipgloss.Style
	Anchor        lipgloss.Style
	Running       lipgloss.Style
	Paused        lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Help:    lipgloss.NewStyle().Faint(true),
		Main:    lipgloss.NewStyle().Padding(mainPadTop, mainPadLeft),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Cell:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("78")),
		Anchor:        lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
		Running:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Paused:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// ForStatus returns the style used for a status message of the given kind
func (s *Styles) ForStatus(kind state.StatusKind) lipgloss.Style {
	switch kind {
	case state.StatusSuccess:
		return s.StatusSuccess
	case state.StatusWarning:
		return s.StatusWarning
	case state.StatusError:
		return s.StatusError
	default:
		return s.StatusInfo
	}
}
