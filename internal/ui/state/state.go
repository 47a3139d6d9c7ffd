package state

// StatusKind classifies the status bar message
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// AppState contains the UI state that is not part of the ticket collection
type AppState struct {
	// Cursor is the ticket index under the keyboard cursor
	Cursor int

	// Grid geometry
	Columns        int // tickets per row
	ViewportOffset int // first visible row
	ViewportHeight int // visible rows

	// Status bar
	StatusMessage string
	StatusKind    StatusKind

	ShowHelp bool

	// AuditFailures counts tickets the audit log could not record
	AuditFailures int
}

// NewAppState creates a new application state
func NewAppState(columns int) *AppState {
	if columns < 1 {
		columns = 1
	}
	return &AppState{
		Columns:        columns,
		ViewportHeight: 20, // until the first WindowSizeMsg
	}
}

// SetStatus replaces the status bar message
func (s *AppState) SetStatus(kind StatusKind, msg string) {
	s.StatusKind = kind
	s.StatusMessage = msg
}

// MoveCursor moves the cursor by whole cells and rows and clamps it to total
func (s *AppState) MoveCursor(dCol, dRow, total int) {
	if total == 0 {
		s.Cursor = 0
		s.ViewportOffset = 0
		return
	}
	next := s.Cursor + dCol + dRow*s.Columns
	// row moves that fall off the grid stay in place rather than wrapping
	if dRow != 0 && (next < 0 || next >= total) {
		next = s.Cursor
	}
	s.SetCursor(next, total)
}

// SetCursor places the cursor at index, clamped to [0, total)
func (s *AppState) SetCursor(index, total int) {
	switch {
	case total == 0:
		index = 0
	case index < 0:
		index = 0
	case index >= total:
		index = total - 1
	}
	s.Cursor = index
	s.EnsureCursorVisible(total)
}

// ClampCursor keeps the cursor valid after the collection shrank
func (s *AppState) ClampCursor(total int) {
	s.SetCursor(s.Cursor, total)
}

// Rows returns the number of grid rows needed for total tickets
func (s *AppState) Rows(total int) int {
	return (total + s.Columns - 1) / s.Columns
}

// EnsureCursorVisible scrolls the viewport so the cursor row is shown
func (s *AppState) EnsureCursorVisible(total int) {
	height := s.ViewportHeight
	if height < 1 {
		height = 1
	}
	row := s.Cursor / s.Columns
	if row < s.ViewportOffset {
		s.ViewportOffset = row
	}
	if row >= s.ViewportOffset+height {
		s.ViewportOffset = row - height + 1
	}
	if maxOffset := s.Rows(total) - height; s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}
