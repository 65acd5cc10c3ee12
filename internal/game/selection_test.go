package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

// boardWith writes word left to right on row 0 of an empty board.
func boardWith(word string) grid.Grid {
	g := grid.New()
	for i, r := range []rune(word) {
		g[0][i].Letter = r
	}
	return g
}

func rowPath(n int) grid.Path {
	p := make(grid.Path, n)
	for i := range p {
		p[i] = grid.Coord{Row: 0, Col: i}
	}
	return p
}

func TestSelectionStateMachine(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, Idle, s.State)

	path, changed := s.Extend(3, 3)
	assert.Empty(t, path, "moves while idle are ignored")
	assert.False(t, changed)

	s.Begin(0, 0)
	assert.Equal(t, Selecting, s.State)
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}}, s.Path)

	path, changed = s.Extend(2, 2)
	assert.True(t, changed)
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, path)

	path, changed = s.Extend(2, 2)
	assert.False(t, changed, "same target recomputes the same path")
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, path)

	path, changed = s.Extend(1, 2)
	assert.False(t, changed, "crooked line keeps the previous path")
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, path)

	path, _ = s.Extend(0, 3)
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}, path, "not incremental: back to a row")

	final := s.End()
	assert.Equal(t, grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}, final)
	assert.Equal(t, Idle, s.State)
	assert.Empty(t, s.Path)
	assert.Empty(t, s.End())
}

func TestEvaluate(t *testing.T) {
	g := boardWith("ANOS")

	t.Run("Reverse match", func(t *testing.T) {
		word, ok, next := Evaluate(rowPath(4), g, []string{"SONA"}, map[string]bool{}, nil)
		require.True(t, ok)
		assert.Equal(t, "SONA", word)
		for _, c := range rowPath(4) {
			assert.True(t, next.At(c).Found)
			assert.False(t, g.At(c).Found, "input grid untouched")
		}
	})

	t.Run("Forward match carries colour", func(t *testing.T) {
		word, ok, next := Evaluate(rowPath(4), g, []string{"ANOS"}, map[string]bool{}, func(string) string { return "teal" })
		require.True(t, ok)
		assert.Equal(t, "ANOS", word)
		assert.Equal(t, "teal", next.At(grid.Coord{Row: 0, Col: 3}).Color)
	})

	t.Run("Already found", func(t *testing.T) {
		_, ok, next := Evaluate(rowPath(4), g, []string{"SONA"}, map[string]bool{"SONA": true}, nil)
		assert.False(t, ok)
		assert.False(t, next.At(grid.Coord{Row: 0, Col: 0}).Found)
	})

	t.Run("Partial word", func(t *testing.T) {
		_, ok, _ := Evaluate(rowPath(3), g, []string{"ANOS", "SONA"}, map[string]bool{}, nil)
		assert.False(t, ok)
	})

	t.Run("Empty path", func(t *testing.T) {
		_, ok, _ := Evaluate(grid.Path{}, g, []string{"ANOS"}, map[string]bool{}, nil)
		assert.False(t, ok)
	})

	t.Run("Off the board", func(t *testing.T) {
		_, ok, _ := Evaluate(grid.Path{{Row: 0, Col: -1}, {Row: 0, Col: 0}}, g, []string{"A"}, map[string]bool{}, nil)
		assert.False(t, ok)
	})
}

func TestEvaluateBothDirections(t *testing.T) {
	g := boardWith("LUNA")
	forward := rowPath(4)
	backward := grid.Line(grid.Coord{Row: 0, Col: 3}, grid.Coord{Row: 0, Col: 0})

	for _, p := range []grid.Path{forward, backward} {
		word, ok, _ := Evaluate(p, g, []string{"LUNA"}, map[string]bool{}, nil)
		assert.True(t, ok)
		assert.Equal(t, "LUNA", word)

		word, ok, _ = Evaluate(p, g, []string{"ANUL"}, map[string]bool{}, nil)
		assert.True(t, ok)
		assert.Equal(t, "ANUL", word)
	}
}
