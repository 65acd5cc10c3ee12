// internal/grid/grid.go
//
// Grid data model for the word search board.
// Defines:
//   - Cell:      one lettered square, with its found flag and highlight colour.
//   - Grid:      the fixed-size square board (Size×Size) of cells.
//   - Coord:     a (row, col) position; Path is an ordered list of them.
//   - Direction: horizontal / vertical / diagonal placement directions.
//   - Placement: where a hidden word was written.
//
// Notes:
//   - Grid values are never mutated once handed out; MarkFound returns a copy.
//   - Letters are runes because the alphabet includes Ñ.

package grid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Size is the width and height of every board.
const Size = 15

// Alphabet is the set of letters used for hidden words and noise fill.
const Alphabet = "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

// alphabetRunes is Alphabet indexed by letter position (Ñ is multi-byte).
var alphabetRunes = []rune(Alphabet)

// Palette is cycled through to tag each placed word with a highlight colour.
var Palette = []string{
	"red", "orange", "amber", "yellow", "lime", "green", "emerald",
	"teal", "cyan", "sky", "blue", "indigo", "violet", "purple",
	"fuchsia", "pink", "rose",
}

// InAlphabet reports whether r is one of the board letters.
func InAlphabet(r rune) bool {
	return strings.ContainsRune(Alphabet, r)
}

// Coord addresses a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Path is an ordered sequence of cells traced by a drag.
type Path []Coord

// Equal reports whether two paths visit the same cells in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Cell is a single board square.
type Cell struct {
	Letter rune   `json:"-"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Found  bool   `json:"found"`
	Color  string `json:"color,omitempty"` // colour of the word that first claimed it
}

// MarshalJSON writes Letter as a one-character string.
func (c Cell) MarshalJSON() ([]byte, error) {
	type alias Cell
	return json.Marshal(struct {
		Letter string `json:"letter"`
		alias
	}{Letter: string(c.Letter), alias: alias(c)})
}

// Grid is a Size×Size board indexed [row][col].
type Grid [][]Cell

// New returns an empty board with every cell's coordinates set.
func New() Grid {
	g := make(Grid, Size)
	for r := range g {
		g[r] = make([]Cell, Size)
		for c := range g[r] {
			g[r][c] = Cell{Row: r, Col: c}
		}
	}
	return g
}

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g[c.Row])
}

// At returns the cell at c. It panics when c is out of bounds.
func (g Grid) At(c Coord) Cell { return g[c.Row][c.Col] }

// Clone returns a deep copy of the board.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]Cell, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

// Letters concatenates the letters along p, in path order.
// Returns ok=false if any coordinate falls off the board.
func (g Grid) Letters(p Path) (string, bool) {
	var b strings.Builder
	for _, c := range p {
		if !g.InBounds(c) {
			return "", false
		}
		b.WriteRune(g.At(c).Letter)
	}
	return b.String(), true
}

// Read returns the letters found along a placement's direction,
// as many as the placed word is long.
func (g Grid) Read(p Placement) string {
	s, _ := g.Letters(p.Path())
	return s
}

// MarkFound returns a copy of g with every cell in p flagged found.
// Cells already found keep their original colour.
func (g Grid) MarkFound(p Path, color string) Grid {
	out := g.Clone()
	for _, c := range p {
		if !out.InBounds(c) {
			continue
		}
		cell := &out[c.Row][c.Col]
		if !cell.Found {
			cell.Color = color
		}
		cell.Found = true
	}
	return out
}

// String renders the board one row per line, letters separated by spaces.
func (g Grid) String() string {
	var b strings.Builder
	for r := range g {
		for c, cell := range g[r] {
			if c > 0 {
				b.WriteByte(' ')
			}
			if cell.Letter == 0 {
				b.WriteByte('.')
			} else {
				b.WriteRune(cell.Letter)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Direction is one of the three placement directions.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	Diagonal
)

// Step returns the (row, col) increment for one letter along d.
func (d Direction) Step() (dr, dc int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	default:
		return 1, 1
	}
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes the lower-case direction name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText parses a lower-case direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*d = Horizontal
	case "vertical":
		*d = Vertical
	case "diagonal":
		*d = Diagonal
	default:
		return fmt.Errorf("grid: unknown direction %q", string(b))
	}
	return nil
}

// Placement records where a word was hidden.
type Placement struct {
	Word      string    `json:"word"`
	StartRow  int       `json:"startRow"`
	StartCol  int       `json:"startCol"`
	Direction Direction `json:"direction"`
	Color     string    `json:"color"`
}

// Path returns the cells the placed word occupies, first letter first.
func (p Placement) Path() Path {
	dr, dc := p.Direction.Step()
	n := len([]rune(p.Word))
	out := make(Path, n)
	for i := 0; i < n; i++ {
		out[i] = Coord{Row: p.StartRow + i*dr, Col: p.StartCol + i*dc}
	}
	return out
}
