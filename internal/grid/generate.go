// internal/grid/generate.go
//
// Puzzle generation: hide a list of words in a fresh board and fill
// the rest with noise letters.
//
// Algorithm:
//   - Upper-case the words and sort them longest first so long words
//     claim space before the board gets crowded.
//   - For each word, try up to MaxAttempts random (direction, start)
//     pairs. A placement is valid when every cell is on the board and
//     any letter already there matches the word (crossings are allowed).
//   - Words that never fit are reported in Result.Skipped.
//   - Every remaining empty cell gets a uniformly random alphabet letter.
//
// All randomness comes from the caller's *rand.Rand, so a fixed seed
// reproduces the same board.

package grid

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxAttempts bounds the random placement tries per word.
const MaxAttempts = 100

// Result is the output of a single generation call.
type Result struct {
	Grid    Grid        `json:"grid"`
	Placed  []Placement `json:"placed"`
	Skipped []string    `json:"skipped"`
}

// PlacedWords returns the words that made it onto the board, in placement order.
func (r Result) PlacedWords() []string {
	out := make([]string, len(r.Placed))
	for i, p := range r.Placed {
		out[i] = p.Word
	}
	return out
}

// Generate builds a new board hiding words. It never fails: words that
// cannot be placed are returned in Skipped and the board is always full.
func Generate(words []string, rng *rand.Rand) Result {
	g := New()
	res := Result{Placed: []Placement{}, Skipped: []string{}}

	sorted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		sorted = append(sorted, w)
	}
	slices.SortStableFunc(sorted, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	for i, w := range sorted {
		word := []rune(w)
		placed := false
		for attempt := 0; attempt < MaxAttempts && !placed; attempt++ {
			dir := pickDirection(rng)
			row, col := rng.IntN(Size), rng.IntN(Size)
			if !g.canPlace(word, row, col, dir) {
				continue
			}
			g.place(word, row, col, dir)
			res.Placed = append(res.Placed, Placement{
				Word:      w,
				StartRow:  row,
				StartCol:  col,
				Direction: dir,
				Color:     Palette[i%len(Palette)],
			})
			placed = true
		}
		if !placed {
			res.Skipped = append(res.Skipped, w)
		}
	}

	for r := range g {
		for c := range g[r] {
			if g[r][c].Letter == 0 {
				g[r][c].Letter = alphabetRunes[rng.IntN(len(alphabetRunes))]
			}
		}
	}
	res.Grid = g
	return res
}

// pickDirection splits [0,1) into roughly equal thirds.
func pickDirection(rng *rand.Rand) Direction {
	switch f := rng.Float64(); {
	case f < 0.33:
		return Horizontal
	case f < 0.66:
		return Vertical
	default:
		return Diagonal
	}
}

// canPlace checks bounds and letter compatibility for word starting at (row, col).
func (g Grid) canPlace(word []rune, row, col int, dir Direction) bool {
	dr, dc := dir.Step()
	for i, ch := range word {
		c := Coord{Row: row + i*dr, Col: col + i*dc}
		if !g.InBounds(c) {
			return false
		}
		if cur := g.At(c).Letter; cur != 0 && cur != ch {
			return false
		}
	}
	return true
}

// place writes word into g in place. Only called on the generator's own board.
func (g Grid) place(word []rune, row, col int, dir Direction) {
	dr, dc := dir.Step()
	for i, ch := range word {
		g[row+i*dr][col+i*dc].Letter = ch
	}
}
