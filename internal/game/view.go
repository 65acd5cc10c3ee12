package game

import (
	"slices"
	"time"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

// View is a render-ready copy of a round, safe to encode while play continues.
type View struct {
	ID         string           `json:"id"`
	Daily      string           `json:"daily,omitempty"`
	Size       int              `json:"size"`
	Cells      grid.Grid        `json:"cells"`
	Words      []string         `json:"words"`
	Found      []string         `json:"found"`
	Skipped    []string         `json:"skipped"`
	Selection  grid.Path        `json:"selection"`
	State      State            `json:"state"`
	ElapsedMs  int64            `json:"elapsedMs"`
	Placements []grid.Placement `json:"placements,omitempty"`
}

// Snapshot copies the round for rendering. Placements (the answers) are
// only included when withPlacements is set.
func (g *Game) Snapshot(withPlacements bool) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		ID:        g.ID,
		Daily:     g.Daily,
		Size:      grid.Size,
		Cells:     g.Board.Clone(),
		Words:     slices.Clone(g.Words),
		Found:     slices.Clone(g.FoundOrder),
		Skipped:   slices.Clone(g.Skipped),
		Selection: slices.Clone(g.Selection.Path),
		State:     g.state(),
	}
	if g.FinishedAt.IsZero() {
		v.ElapsedMs = time.Since(g.StartedAt).Milliseconds()
	} else {
		v.ElapsedMs = g.FinishedAt.Sub(g.StartedAt).Milliseconds()
	}
	if withPlacements {
		v.Placements = slices.Clone(g.Placed)
	}
	return v
}

// Remaining returns the words not yet found, in list order.
func (g *Game) Remaining() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := []string{}
	for _, w := range g.Words {
		if !g.Found[w] {
			out = append(out, w)
		}
	}
	return out
}
