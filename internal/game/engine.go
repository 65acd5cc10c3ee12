// internal/game/engine.go
//
// Round engine for a single word search game.
// Responsibilities:
//   - Create rounds from a word list and a seed (deterministic boards).
//   - Route pointer down/move/up events through the Selection state machine.
//   - Evaluate finished drags and record found words.
//   - Track state transitions: playing → won.
//
// Notes:
//   - Only placed words are playable; skipped words are kept for display.
//   - Restart regenerates the board and drops all progress wholesale.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	mrand "math/rand/v2"
	"slices"
	"time"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

// New generates a round hiding words, using seed for every random choice.
func New(words []string, seed uint64) *Game {
	g := &Game{ID: randomID()}
	g.reset(words, seed)
	return g
}

// NewSeed returns a seed drawn from crypto/rand.
func NewSeed() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}

// RNG returns the generator a round with the given seed uses.
func RNG(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// Restart regenerates the board for the same round ID. Found words,
// the current drag and any victory are discarded.
func (g *Game) Restart(words []string, seed uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset(words, seed)
}

func (g *Game) reset(words []string, seed uint64) {
	res := grid.Generate(words, RNG(seed))
	g.Seed = seed
	g.Source = slices.Clone(words)
	g.Words = res.PlacedWords()
	g.Skipped = res.Skipped
	g.Placed = res.Placed
	g.Board = res.Grid
	g.Found = make(map[string]bool)
	g.FoundOrder = []string{}
	g.Selection = NewSelection()
	g.StartedAt = time.Now().UTC()
	g.FinishedAt = time.Time{}
	g.lastActive = g.StartedAt
}

// PointerDown starts a drag at (row, col). Presses off the board are ignored.
func (g *Game) PointerDown(row, col int) grid.Path {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pointerDown(row, col)
}

func (g *Game) pointerDown(row, col int) grid.Path {
	g.lastActive = time.Now().UTC()
	if !g.Board.InBounds(grid.Coord{Row: row, Col: col}) {
		return g.Selection.Path
	}
	g.Selection.Begin(row, col)
	return g.Selection.Path
}

// PointerMove recomputes the drag path toward (row, col).
// Moves off the board, non-straight moves, and moves while idle leave
// the current path as it is.
func (g *Game) PointerMove(row, col int) (grid.Path, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pointerMove(row, col)
}

func (g *Game) pointerMove(row, col int) (grid.Path, bool) {
	g.lastActive = time.Now().UTC()
	if !g.Board.InBounds(grid.Coord{Row: row, Col: col}) {
		return g.Selection.Path, false
	}
	return g.Selection.Extend(row, col)
}

// PointerUp ends the drag and evaluates it. ok is true when the drag
// confirmed a new word; ev then describes it.
func (g *Game) PointerUp() (ev Event, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ev, ok = g.pointerUp()
	return ev, ok
}

func (g *Game) pointerUp() (grid.Path, Event, bool) {
	g.lastActive = time.Now().UTC()
	path := g.Selection.End()
	if !g.FinishedAt.IsZero() {
		return path, Event{}, false
	}
	word, matched, next := Evaluate(path, g.Board, g.Words, g.Found, g.colorOf)
	if !matched {
		return path, Event{}, false
	}

	color := g.colorOf(word)
	g.Board = next
	g.Found[word] = true
	g.FoundOrder = append(g.FoundOrder, word)
	won := g.won()
	if won {
		g.FinishedAt = time.Now().UTC()
	}
	return path, Event{
		Word:  word,
		Path:  path,
		Color: color,
		Found: len(g.Found),
		Total: len(g.Words),
		Won:   won,
	}, true
}

// Select runs a complete drag from one cell to another under a single
// lock, so concurrent pointer events cannot interleave with it. path is
// the drag that was evaluated.
func (g *Game) Select(from, to grid.Coord) (path grid.Path, ev Event, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pointerDown(from.Row, from.Col)
	g.pointerMove(to.Row, to.Col)
	return g.pointerUp()
}

// colorOf returns the palette tag recorded for word's placement.
func (g *Game) colorOf(word string) string {
	for _, p := range g.Placed {
		if p.Word == word {
			return p.Color
		}
	}
	return ""
}

// won reports whether every playable word has been found.
func (g *Game) won() bool {
	return len(g.Words) > 0 && len(g.Found) == len(g.Words)
}

// Won reports whether every playable word has been found.
func (g *Game) Won() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.won()
}

// State reports the coarse round state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() State {
	if g.won() {
		return StateWon
	}
	return StatePlaying
}

// IdleSince reports when the round last saw a pointer event or restart.
func (g *Game) IdleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// Elapsed is the time from generation to victory, or to now while playing.
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FinishedAt.IsZero() {
		return time.Since(g.StartedAt)
	}
	return g.FinishedAt.Sub(g.StartedAt)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
