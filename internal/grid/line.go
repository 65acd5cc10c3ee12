package grid

// Line returns the straight path from anchor to current, inclusive.
//
// Only the eight compass directions are accepted: the two points must
// share a row, share a column, or lie on a 45° diagonal. Any other pair
// yields an empty path. Equal points yield just the anchor.
func Line(anchor, current Coord) Path {
	dx := current.Col - anchor.Col
	dy := current.Row - anchor.Row
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return Path{anchor}
	}
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return Path{}
	}

	// dx/steps and dy/steps are exactly -1, 0 or 1 here.
	xInc, yInc := dx/steps, dy/steps
	out := make(Path, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, Coord{Row: anchor.Row + i*yInc, Col: anchor.Col + i*xInc})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
