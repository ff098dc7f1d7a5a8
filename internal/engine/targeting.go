package engine

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/grid"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// Targeting works over snapshots of unit positions. All functions
// break ties by iteration order, so callers must pass candidates in a
// fixed, reproducible order (roster order), never a map iteration.

// Closest returns the candidate nearest to origin by Chebyshev
// distance; the first candidate wins distance ties.
func Closest(origin game.Position, candidates []*game.BattleUnit) *game.BattleUnit {
	var best *game.BattleUnit
	bestDist := 0
	for _, c := range candidates {
		d := grid.Chebyshev(origin, c.Pos)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// LowestHP returns the candidate with the least remaining HP; the
// first candidate wins ties.
func LowestHP(candidates []*game.BattleUnit) *game.BattleUnit {
	var best *game.BattleUnit
	for _, c := range candidates {
		if best == nil || c.Stats.HP < best.Stats.HP {
			best = c
		}
	}
	return best
}

// InRange filters candidates to those within rng cells of origin,
// inclusive, preserving order.
func InRange(origin game.Position, rng int, candidates []*game.BattleUnit) []*game.BattleUnit {
	out := make([]*game.BattleUnit, 0, len(candidates))
	for _, c := range candidates {
		if grid.InRange(origin, c.Pos, rng) {
			out = append(out, c)
		}
	}
	return out
}

// visible filters out invisible units, unless every candidate is
// invisible (a fully hidden roster can still be engaged, otherwise the
// battle could never terminate).
func visible(candidates []*game.BattleUnit) []*game.BattleUnit {
	out := make([]*game.BattleUnit, 0, len(candidates))
	for _, c := range candidates {
		if !status.IsInvisible(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

// pickTarget selects a unit's target for this action: the closest
// visible living opponent.
func (bc *battleContext) pickTarget(u *game.BattleUnit) *game.BattleUnit {
	return Closest(u.Pos, visible(bc.state.Opponents(u.Faction)))
}
