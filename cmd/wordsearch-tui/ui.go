package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

const (
	boardX    = 2 // screen column of the first board cell
	boardY    = 1 // screen row of the first board cell
	cellWidth = 2 // letter + gap
	listX     = boardX + grid.Size*cellWidth + 3
)

// paletteColors maps palette tags to terminal colours.
var paletteColors = map[string]tcell.Color{
	"red":     tcell.NewHexColor(0xef4444),
	"orange":  tcell.NewHexColor(0xf97316),
	"amber":   tcell.NewHexColor(0xf59e0b),
	"yellow":  tcell.NewHexColor(0xeab308),
	"lime":    tcell.NewHexColor(0x84cc16),
	"green":   tcell.NewHexColor(0x22c55e),
	"emerald": tcell.NewHexColor(0x10b981),
	"teal":    tcell.NewHexColor(0x14b8a6),
	"cyan":    tcell.NewHexColor(0x06b6d4),
	"sky":     tcell.NewHexColor(0x0ea5e9),
	"blue":    tcell.NewHexColor(0x3b82f6),
	"indigo":  tcell.NewHexColor(0x6366f1),
	"violet":  tcell.NewHexColor(0x8b5cf6),
	"purple":  tcell.NewHexColor(0xa855f7),
	"fuchsia": tcell.NewHexColor(0xd946ef),
	"pink":    tcell.NewHexColor(0xec4899),
	"rose":    tcell.NewHexColor(0xf43f5e),
}

// roundSource produces the words and seed for a fresh board.
type roundSource func() ([]string, uint64, error)

// ui plays one local round in a terminal.
type ui struct {
	screen   tcell.Screen
	round    *game.Game
	next     roundSource
	dragging bool
	message  string
}

func newUI(screen tcell.Screen, next roundSource) (*ui, error) {
	list, seed, err := next()
	if err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return &ui{screen: screen, round: game.New(list, seed), next: next}, nil
}

// cellAt maps a screen position to a board cell.
func cellAt(x, y int) (grid.Coord, bool) {
	dx, row := x-boardX, y-boardY
	if dx < 0 || row < 0 || dx%cellWidth != 0 {
		return grid.Coord{}, false
	}
	c := grid.Coord{Row: row, Col: dx / cellWidth}
	return c, c.Row < grid.Size && c.Col < grid.Size
}

// handleMouse turns button-1 press, drag and release into pointer events.
func (u *ui) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	c, onBoard := cellAt(x, y)

	switch {
	case pressed && !u.dragging:
		if !onBoard {
			return
		}
		u.round.PointerDown(c.Row, c.Col)
		u.dragging = true
	case pressed && u.dragging:
		if onBoard {
			u.round.PointerMove(c.Row, c.Col)
		}
	case !pressed && u.dragging:
		u.dragging = false
		hit, ok := u.round.PointerUp()
		if !ok {
			return
		}
		log.Debug().Str("word", hit.Word).Int("found", hit.Found).Msg("word found")
		u.message = fmt.Sprintf("¡%s! %d/%d", hit.Word, hit.Found, hit.Total)
		if hit.Won {
			u.message = fmt.Sprintf("¡Ganaste! %d palabras en %s", hit.Total, u.round.Elapsed().Round(time.Second))
		}
	}
}

// handleKey reports false when the program should exit.
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
		list, seed, err := u.next()
		if err != nil {
			u.message = err.Error()
			return true
		}
		u.round.Restart(list, seed)
		u.dragging = false
		u.message = "nuevo tablero"
	}
	return true
}

// handle dispatches one terminal event; false means quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *ui) draw() {
	s := u.screen
	s.Clear()
	v := u.round.Snapshot(false)

	selected := make(map[grid.Coord]bool, len(v.Selection))
	for _, c := range v.Selection {
		selected[c] = true
	}

	for _, row := range v.Cells {
		for _, cell := range row {
			style := tcell.StyleDefault
			if cell.Found {
				style = style.Background(paletteColors[cell.Color]).Foreground(tcell.ColorBlack)
			}
			if selected[grid.Coord{Row: cell.Row, Col: cell.Col}] {
				style = style.Reverse(true).Bold(true)
			}
			s.SetContent(boardX+cell.Col*cellWidth, boardY+cell.Row, cell.Letter, nil, style)
		}
	}

	found := make(map[string]bool, len(v.Found))
	for _, w := range v.Found {
		found[w] = true
	}
	drawText(s, listX, boardY, tcell.StyleDefault.Bold(true), "PALABRAS")
	for i, w := range v.Words {
		style := tcell.StyleDefault
		if found[w] {
			style = style.StrikeThrough(true).Dim(true)
		}
		drawText(s, listX, boardY+2+i, style, w)
	}
	if len(v.Skipped) > 0 {
		y := boardY + 3 + len(v.Words)
		drawText(s, listX, y, tcell.StyleDefault.Dim(true), "sin lugar: "+strings.Join(v.Skipped, ", "))
	}

	status := fmt.Sprintf("%d/%d  r: reiniciar  q: salir", len(v.Found), len(v.Words))
	drawText(s, boardX, boardY+grid.Size+1, tcell.StyleDefault, status)
	if u.message != "" {
		drawText(s, boardX, boardY+grid.Size+2, tcell.StyleDefault.Foreground(tcell.ColorGreen), u.message)
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// run draws and handles events until the player quits.
func (u *ui) run() {
	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}
		if !u.handle(ev) {
			return
		}
		u.draw()
	}
}
