// internal/game/selection.go
//
// Drag-selection handling.
// Responsibilities:
//   - Track the pointer gesture as a two-state machine (Idle → Selecting → Idle).
//   - Recompute the whole straight path from the fixed anchor on every move.
//   - Evaluate a finished path against the word list, both directions.
//
// Notes:
//   - Nothing here blocks or errors; bad drags are no-ops.
//   - Evaluate never mutates its inputs; a match returns a new grid.

package game

import (
	"slices"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

// SelectionState is the pointer gesture state.
type SelectionState string

const (
	Idle      SelectionState = "idle"
	Selecting SelectionState = "selecting"
)

// Selection is the session-owned state of the current drag.
type Selection struct {
	State  SelectionState `json:"state"`
	Anchor grid.Coord     `json:"anchor"`
	Path   grid.Path      `json:"path"` // the path currently displayed
}

// NewSelection returns an idle selection.
func NewSelection() Selection {
	return Selection{State: Idle, Path: grid.Path{}}
}

// Begin starts a new drag anchored at (row, col), replacing any drag in progress.
func (s *Selection) Begin(row, col int) {
	s.State = Selecting
	s.Anchor = grid.Coord{Row: row, Col: col}
	s.Path = grid.Path{s.Anchor}
}

// Extend recomputes the path from the anchor to (row, col).
// A rejected (non-straight) line leaves the displayed path untouched;
// changed reports whether the displayed path was replaced.
func (s *Selection) Extend(row, col int) (path grid.Path, changed bool) {
	if s.State != Selecting {
		return s.Path, false
	}
	next := grid.Line(s.Anchor, grid.Coord{Row: row, Col: col})
	if len(next) == 0 {
		return s.Path, false
	}
	changed = !next.Equal(s.Path)
	s.Path = next
	return s.Path, changed
}

// End finishes the drag, returning the final path and resetting to Idle.
// Ending an idle selection returns an empty path.
func (s *Selection) End() grid.Path {
	if s.State != Selecting {
		return grid.Path{}
	}
	p := s.Path
	*s = NewSelection()
	return p
}

// Evaluate reads the letters along path and checks them, forwards and
// backwards, against words that are not in found.
//
// On a match it returns the matched word and a copy of g with the path
// cells marked found, coloured with colorOf(word) when colorOf is set.
// Otherwise it returns ok=false and g itself.
func Evaluate(path grid.Path, g grid.Grid, words []string, found map[string]bool, colorOf func(word string) string) (word string, ok bool, next grid.Grid) {
	if len(path) == 0 {
		return "", false, g
	}
	forward, inBounds := g.Letters(path)
	if !inBounds {
		return "", false, g
	}
	backward := reverse(forward)

	for _, candidate := range []string{forward, backward} {
		if found[candidate] || !slices.Contains(words, candidate) {
			continue
		}
		color := ""
		if colorOf != nil {
			color = colorOf(candidate)
		}
		return candidate, true, g.MarkFound(path, color)
	}
	return "", false, g
}

// reverse reverses s rune by rune.
func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}
