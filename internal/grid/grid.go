// Package grid provides the pure position math the battle engine is
// built on. Movement is 8-directional, so all distances are Chebyshev
// (a diagonal step costs 1).
package grid

import "github.com/Orloaft/gridder-sub002/internal/game"

// Chebyshev returns the board distance between two cells.
func Chebyshev(a, b game.Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// InRange reports whether target is within rng cells of origin,
// inclusive.
func InRange(origin, target game.Position, rng int) bool {
	return Chebyshev(origin, target) <= rng
}

// Adjacent reports whether two cells touch (including diagonals).
func Adjacent(a, b game.Position) bool {
	return a != b && Chebyshev(a, b) == 1
}

// StepToward returns the cell one step from `from` toward `to`, moving
// diagonally when both axes differ. Returns `from` unchanged when
// already there.
func StepToward(from, to game.Position) game.Position {
	next := from
	next.X += sign(to.X - from.X)
	next.Y += sign(to.Y - from.Y)
	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
