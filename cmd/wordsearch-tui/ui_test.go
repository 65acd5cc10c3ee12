package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

func TestCellAt(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want grid.Coord
		ok   bool
	}{
		{"origin", boardX, boardY, grid.Coord{Row: 0, Col: 0}, true},
		{"third column", boardX + 2*cellWidth, boardY + 4, grid.Coord{Row: 4, Col: 2}, true},
		{"last cell", boardX + (grid.Size-1)*cellWidth, boardY + grid.Size - 1, grid.Coord{Row: 14, Col: 14}, true},
		{"gap between letters", boardX + 1, boardY, grid.Coord{}, false},
		{"left margin", 0, boardY, grid.Coord{}, false},
		{"above board", boardX, 0, grid.Coord{}, false},
		{"below board", boardX, boardY + grid.Size, grid.Coord{}, false},
		{"word list", listX, boardY, grid.Coord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cellAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func testUI(t *testing.T) *ui {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	u, err := newUI(screen, source(99, "sol,luna,mar,árbol,niño"))
	require.NoError(t, err)
	return u
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func screenPos(c grid.Coord) (int, int) {
	return boardX + c.Col*cellWidth, boardY + c.Row
}

func TestDragFindsWord(t *testing.T) {
	u := testUI(t)
	p := u.round.Placed[0]
	path := p.Path()

	// Drag end to start: reversed selections count too.
	x, y := screenPos(path[len(path)-1])
	u.handle(mouse(x, y, tcell.Button1))
	x, y = screenPos(path[0])
	u.handle(mouse(x, y, tcell.Button1))
	assert.Len(t, u.round.Snapshot(false).Selection, len(path))

	u.handle(mouse(x, y, tcell.ButtonNone))
	assert.False(t, u.dragging)
	assert.Equal(t, []string{p.Word}, u.round.Snapshot(false).Found)
	assert.Contains(t, u.message, p.Word)

	u.draw()
	sx, sy := screenPos(path[0])
	mainc, _, _, _ := u.screen.GetContent(sx, sy)
	assert.Equal(t, []rune(p.Word)[0], mainc)
}

func TestPressOffBoardIgnored(t *testing.T) {
	u := testUI(t)
	u.handle(mouse(0, 0, tcell.Button1))
	assert.False(t, u.dragging)
	u.handle(mouse(0, 0, tcell.ButtonNone))
	assert.Empty(t, u.round.Snapshot(false).Found)
}

func TestKeys(t *testing.T) {
	u := testUI(t)
	p := u.round.Placed[0].Path()
	_, _, ok := u.round.Select(p[0], p[len(p)-1])
	require.True(t, ok)
	require.Len(t, u.round.Snapshot(false).Found, 1)

	assert.True(t, u.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Empty(t, u.round.Snapshot(false).Found)

	assert.False(t, u.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, u.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}
