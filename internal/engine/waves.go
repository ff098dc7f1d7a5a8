package engine

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/grid"
	"github.com/Orloaft/gridder-sub002/internal/pacing"
	"github.com/Orloaft/gridder-sub002/internal/position"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// WaveSpec describes one enemy wave: the templates to spawn and the
// formation cells they occupy. Formation must provide a cell per
// template.
type WaveSpec struct {
	Templates []game.UnitTemplate
	Formation []game.Position
}

// spawnWave instantiates a wave's enemies, scales them with the pacing
// modifiers and places them atomically. Formation cells blocked by
// surviving heroes shift deterministically to the nearest free cell,
// so a mid-battle transition never fails on occupancy; placement stays
// all-or-nothing at the store level. seq numbers enemy instances
// across waves so ids stay unique for the battle.
func (bc *battleContext) spawnWave(wave int, spec WaveSpec, mods pacing.Modifiers, seq *int) error {
	units := make([]*game.BattleUnit, 0, len(spec.Templates))
	placements := make([]position.Placement, 0, len(spec.Templates))
	claimed := make(map[game.Position]bool, len(spec.Templates))
	for i, t := range spec.Templates {
		*seq++
		u := game.NewBattleUnit(t, game.FactionEnemy, *seq)
		mods.ApplyToStats(&u.Stats)
		cell, ok := bc.freeSpawnCell(spec.Formation[i], claimed)
		if !ok {
			// board is completely full; drop the unit, keep the battle
			bc.warn("no free spawn cell, unit skipped", u.ID)
			continue
		}
		claimed[cell] = true
		u.Pos = cell
		units = append(units, u)
		placements = append(placements, position.Placement{UnitID: u.ID, Pos: u.Pos})
	}
	if err := bc.positions.BatchUpdate(placements); err != nil {
		return err
	}
	bc.state.Enemies = units
	for _, u := range units {
		pos := u.Pos
		bc.state.Append(game.Event{Kind: game.EventSpawn, UnitID: u.ID, To: &pos, Wave: wave})
		for _, eff := range mods.SpawnStatuses("pacing") {
			status.Apply(u, eff, bc.state)
		}
	}
	return nil
}

// freeSpawnCell returns the desired cell when free, otherwise the
// nearest free cell by Chebyshev distance. Candidates at equal
// distance are tried in row-major order so spawn shifts replay
// identically. claimed holds cells already taken by this wave.
func (bc *battleContext) freeSpawnCell(desired game.Position, claimed map[game.Position]bool) (game.Position, bool) {
	free := func(p game.Position) bool {
		return !claimed[p] && !bc.positions.Occupied(p)
	}
	if free(desired) {
		return desired, true
	}
	maxDist := bc.board.Width
	if bc.board.Height > maxDist {
		maxDist = bc.board.Height
	}
	for d := 1; d < maxDist; d++ {
		for y := 0; y < bc.board.Height; y++ {
			for x := 0; x < bc.board.Width; x++ {
				p := game.Position{X: x, Y: y}
				if grid.Chebyshev(desired, p) == d && free(p) {
					return p, true
				}
			}
		}
	}
	return game.Position{}, false
}

// DefaultHeroFormation lines heroes up along the left edge.
func DefaultHeroFormation(b Board, n int) []game.Position {
	return columnFormation(b, n, 0, 1)
}

// DefaultEnemyFormation lines enemies up along the right edge.
func DefaultEnemyFormation(b Board, n int) []game.Position {
	return columnFormation(b, n, b.Width-1, -1)
}

// columnFormation fills cells top to bottom starting at column x,
// spilling into the adjacent column when a wave is taller than the
// board.
func columnFormation(b Board, n, x, dx int) []game.Position {
	out := make([]game.Position, 0, n)
	col, row := x, 0
	for i := 0; i < n; i++ {
		out = append(out, game.Position{X: col, Y: row})
		row++
		if row >= b.Height {
			row = 0
			col += dx
		}
	}
	return out
}
