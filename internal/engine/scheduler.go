package engine

import (
	"sort"

	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/grid"
	"github.com/Orloaft/gridder-sub002/internal/position"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// maxTicksPerWave bounds a wave that cannot progress (both sides fully
// negated by procs). Normal battles finish far earlier because every
// landed hit deals at least 1 damage.
const maxTicksPerWave = 1000

// runWave drives ticks until one faction is eliminated and returns the
// surviving faction. Terminal conditions are checked after every single
// unit action, not just at tick boundaries, so a wave ends the moment
// the last unit drops.
func (bc *battleContext) runWave() game.Faction {
	bc.phase = PhaseSimulating
	startTick := bc.state.Tick
	for {
		bc.state.Tick++
		bc.decrementCooldowns()

		for _, u := range bc.state.Units() {
			if u.Alive {
				bc.catalog.RunTurnStart(u, bc.state)
			}
		}
		bc.sweepDeaths()
		if w, done := bc.terminal(); done {
			return w
		}

		for _, u := range bc.actionOrder() {
			if !u.Alive {
				continue
			}
			if status.IsStunned(u) {
				continue
			}
			bc.takeAction(u)
			if w, done := bc.terminal(); done {
				return w
			}
		}

		for _, u := range bc.state.Units() {
			if u.Alive {
				bc.catalog.RunTurnEnd(u, bc.state)
			}
		}
		bc.sweepDeaths()

		for _, u := range bc.state.Units() {
			if u.Alive {
				status.Tick(u, bc.state)
			}
		}
		bc.sweepDeaths()

		// transient buffs last a single turn
		for _, u := range bc.state.Units() {
			u.Transient = nil
		}

		if w, done := bc.terminal(); done {
			return w
		}
		if bc.state.Tick-startTick >= maxTicksPerWave {
			bc.warn("wave exceeded tick bound, deciding by remaining HP", "")
			return bc.leadingFaction()
		}
	}
}

// actionOrder returns all living units sorted by speed descending.
// Ties keep roster order (heroes before enemies, then index), which is
// what the stable sort over Units() yields.
func (bc *battleContext) actionOrder() []*game.BattleUnit {
	units := make([]*game.BattleUnit, 0)
	for _, u := range bc.state.Units() {
		if u.Alive {
			units = append(units, u)
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		return speedWithModifiers(units[i]) > speedWithModifiers(units[j])
	})
	return units
}

// takeAction runs one unit's turn: pick a target, close distance if out
// of range, then fire a ready ability or fall back to a basic attack.
func (bc *battleContext) takeAction(u *game.BattleUnit) {
	target := bc.pickTarget(u)
	if target == nil {
		return
	}
	if !grid.InRange(u.Pos, target.Pos, u.Range) {
		bc.moveToward(u, target)
		if !grid.InRange(u.Pos, target.Pos, u.Range) {
			return
		}
	}
	if bc.useAbility(u, target) {
		return
	}
	bc.state.Append(game.Event{Kind: game.EventAttack, UnitID: u.ID, TargetID: target.ID})
	r := bc.resolveAttack(u, target, damageWithModifiers(u))
	bc.applyDamage(u, target, r)
}

// moveToward steps one cell toward the target through the position
// store. A blocked destination (pending or committed occupancy) makes
// the unit hold position this turn.
func (bc *battleContext) moveToward(u *game.BattleUnit, target *game.BattleUnit) {
	next := grid.StepToward(u.Pos, target.Pos)
	if next == u.Pos || !bc.board.Contains(next) {
		return
	}
	moveID, err := bc.positions.BeginMove(u.ID, next)
	if err != nil {
		if err != position.ErrDestinationBlocked {
			bc.warn("move rejected: "+err.Error(), u.ID)
		}
		return
	}
	if err := bc.positions.CommitMove(moveID); err != nil {
		bc.warn("move commit failed: "+err.Error(), u.ID)
		return
	}
	from := u.Pos
	u.Pos = next
	bc.state.Append(game.Event{Kind: game.EventMove, UnitID: u.ID, From: &from, To: &next})
}

// terminal reports whether one side has been eliminated and who won.
func (bc *battleContext) terminal() (game.Faction, bool) {
	if len(bc.state.Living(game.FactionEnemy)) == 0 {
		return game.FactionHero, true
	}
	if len(bc.state.Living(game.FactionHero)) == 0 {
		return game.FactionEnemy, true
	}
	return "", false
}

// leadingFaction compares total remaining HP, heroes winning ties.
func (bc *battleContext) leadingFaction() game.Faction {
	heroHP, enemyHP := 0, 0
	for _, u := range bc.state.Living(game.FactionHero) {
		heroHP += u.Stats.HP
	}
	for _, u := range bc.state.Living(game.FactionEnemy) {
		enemyHP += u.Stats.HP
	}
	if heroHP >= enemyHP {
		return game.FactionHero
	}
	return game.FactionEnemy
}
