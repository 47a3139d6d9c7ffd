package views

import (
	"fmt"
	"strings"

	"ticketgrid/internal/domain"
)

const (
	mainPadTop  = 1
	mainPadLeft = 2

	// title line and prompt line
	headerLines = 2
	// blank line, status line, help line
	footerLines = 3

	minUIDWidth = 4
	cellGap     = 1
)

// GridHeight returns how many grid rows fit in a terminal of the given height
func GridHeight(termHeight int) int {
	h := termHeight - 2*mainPadTop - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// Layout describes where the grid cells are on screen
type Layout struct {
	Left, Top   int // screen origin of the first visible cell
	CellWidth   int
	Gap         int
	Columns     int
	FirstRow    int // first visible grid row
	VisibleRows int
	Total       int
}

// NewLayout computes the grid geometry for the given tickets
func NewLayout(tickets []domain.Ticket, columns, offset, height int) Layout {
	if columns < 1 {
		columns = 1
	}
	uidWidth := minUIDWidth
	for _, t := range tickets {
		if len(t.UID) > uidWidth {
			uidWidth = len(t.UID)
		}
	}

	rows := (len(tickets) + columns - 1) / columns
	visible := rows - offset
	if visible > height {
		visible = height
	}
	if visible < 0 {
		visible = 0
	}

	return Layout{
		Left:        mainPadLeft,
		Top:         mainPadTop + headerLines,
		CellWidth:   uidWidth + 2,
		Gap:         cellGap,
		Columns:     columns,
		FirstRow:    offset,
		VisibleRows: visible,
		Total:       len(tickets),
	}
}

// HitTest maps a screen cell to a ticket index. Points in the gaps between
// cells or outside the visible rows report false. A point on the last row past
// the final ticket yields an index >= Total; the collection reports it as
// skipped.
func (l Layout) HitTest(x, y int) (int, bool) {
	gx, gy := x-l.Left, y-l.Top
	if gx < 0 || gy < 0 || gy >= l.VisibleRows {
		return 0, false
	}

	stride := l.CellWidth + l.Gap
	col := gx / stride
	if col >= l.Columns || gx%stride >= l.CellWidth {
		return 0, false
	}
	return (l.FirstRow+gy)*l.Columns + col, true
}

// cellText renders one ticket as a fixed width cell. The anchor carries a
// leading marker so it stays visible without colour.
func (l Layout) cellText(t domain.Ticket, isAnchor bool) string {
	marker := " "
	if isAnchor {
		marker = "*"
	}
	return fmt.Sprintf("%s%*s ", marker, l.CellWidth-2, t.UID)
}

// renderGrid renders the visible rows of the grid
func (r *Renderer) renderGrid(l Layout, vs ViewState) string {
	lines := make([]string, 0, l.VisibleRows)
	gap := strings.Repeat(" ", l.Gap)

	for row := l.FirstRow; row < l.FirstRow+l.VisibleRows; row++ {
		cells := make([]string, 0, l.Columns)
		for col := 0; col < l.Columns; col++ {
			i := row*l.Columns + col
			if i >= len(vs.Tickets) {
				break
			}
			t := vs.Tickets[i]
			isAnchor := vs.HasAnchor && vs.Anchor == i

			style := r.styles.Cell
			switch {
			case isAnchor:
				style = r.styles.Anchor
			case t.Selected:
				style = r.styles.Selected
			}
			if i == vs.Cursor {
				style = style.Reverse(true)
			}
			cells = append(cells, style.Render(l.cellText(t, isAnchor)))
		}
		lines = append(lines, strings.Join(cells, gap))
	}
	return strings.Join(lines, "\n")
}
