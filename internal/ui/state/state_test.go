package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		dCol, dRow int
		total      int
		want       int
	}{
		{"right", 0, 1, 0, 10, 1},
		{"left at start", 0, -1, 0, 10, 0},
		{"right wraps to next row", 4, 1, 0, 10, 5},
		{"down", 1, 0, 1, 10, 6},
		{"down off grid stays", 7, 0, 1, 10, 7},
		{"up off grid stays", 2, 0, -1, 10, 2},
		{"right at end", 9, 1, 0, 10, 9},
		{"empty", 3, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAppState(5)
			s.Cursor = tt.start
			s.MoveCursor(tt.dCol, tt.dRow, tt.total)
			assert.Equal(t, tt.want, s.Cursor)
		})
	}
}

func TestClampCursorAfterShrink(t *testing.T) {
	s := NewAppState(5)
	s.SetCursor(9, 10)

	s.ClampCursor(4)

	assert.Equal(t, 3, s.Cursor)
}

func TestViewportFollowsCursor(t *testing.T) {
	s := NewAppState(5)
	s.ViewportHeight = 2

	s.SetCursor(17, 50) // row 3
	assert.Equal(t, 2, s.ViewportOffset)

	s.SetCursor(0, 50)
	assert.Equal(t, 0, s.ViewportOffset)

	s.SetCursor(49, 50) // last row 9
	assert.Equal(t, 8, s.ViewportOffset)

	s.ClampCursor(6) // two rows left
	assert.Equal(t, 5, s.Cursor)
	assert.Equal(t, 0, s.ViewportOffset)
}

func TestRows(t *testing.T) {
	s := NewAppState(5)
	assert.Equal(t, 0, s.Rows(0))
	assert.Equal(t, 1, s.Rows(5))
	assert.Equal(t, 2, s.Rows(6))
}

func TestNewAppStateClampsColumns(t *testing.T) {
	assert.Equal(t, 1, NewAppState(0).Columns)
}
