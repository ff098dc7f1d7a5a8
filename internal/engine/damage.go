package engine

import "github.com/Orloaft/gridder-sub002/internal/game"

// DamageResult is the outcome of one resolved attack. Item hooks may
// have overridden FinalDamage, but never the evasion/crit booleans.
type DamageResult struct {
	FinalDamage int
	IsCrit      bool
	IsEvaded    bool
}

// resolveAttack converts a raw attack into a final damage value.
// Steps, in order: evasion roll, crit roll, defense mitigation (with
// penetration, floored at 1), then the item hook pipeline: attacker
// onAttack handlers followed by defender onDefend handlers, each
// chained in equip order. Every step that changes the outcome appends
// a distinguishable log entry.
func (bc *battleContext) resolveAttack(attacker, target *game.BattleUnit, base int) DamageResult {
	var r DamageResult

	if bc.state.Rand.Float64() < evadeChance(attacker, target) {
		r.IsEvaded = true
		bc.state.Append(game.Event{Kind: game.EventEvaded, UnitID: target.ID, TargetID: attacker.ID})
		return r
	}

	dmg := base
	if bc.state.Rand.Float64() < attacker.Stats.CritChance {
		r.IsCrit = true
		cd := attacker.Stats.CritDamage
		if cd < 1 {
			// a crit never reduces damage
			cd = 2
		}
		dmg = int(float64(dmg) * cd)
		bc.state.Append(game.Event{Kind: game.EventCritical, UnitID: attacker.ID, TargetID: target.ID})
	}

	def := defenseWithModifiers(target)
	if p := attacker.Stats.Penetration; p > 0 {
		if p > 1 {
			p = 1
		}
		def = int(float64(def) * (1 - p))
	}
	dmg -= def
	if dmg < 1 {
		dmg = 1
	}

	dmg = bc.catalog.RunOnAttack(attacker, target, dmg, bc.state)
	dmg = bc.catalog.RunOnDefend(target, attacker, dmg, bc.state)
	if dmg < 0 {
		dmg = 0
	}
	r.FinalDamage = dmg
	return r
}

// evadeChance is the target's evasion reduced by the attacker's
// accuracy, clamped to [0, 1].
func evadeChance(attacker, target *game.BattleUnit) float64 {
	c := target.Stats.Evasion * (1 - attacker.Stats.Accuracy)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// applyDamage writes a resolved attack to the target's HP, handles
// lifesteal, and processes a resulting death. Evaded attacks change
// nothing.
func (bc *battleContext) applyDamage(attacker, target *game.BattleUnit, r DamageResult) {
	if r.IsEvaded || r.FinalDamage <= 0 {
		return
	}
	target.Stats.HP -= r.FinalDamage
	bc.state.Append(game.Event{Kind: game.EventDamage, UnitID: attacker.ID, TargetID: target.ID, Amount: r.FinalDamage})

	if ls := attacker.Stats.Lifesteal; ls > 0 && attacker.Alive {
		heal := int(float64(r.FinalDamage) * ls)
		if heal > 0 {
			if attacker.Stats.HP+heal > attacker.Stats.MaxHP {
				heal = attacker.Stats.MaxHP - attacker.Stats.HP
			}
			if heal > 0 {
				attacker.Stats.HP += heal
				bc.state.Append(game.Event{Kind: game.EventHeal, UnitID: attacker.ID, Amount: heal, Source: "lifesteal"})
			}
		}
	}

	if target.Stats.HP <= 0 {
		bc.resolveDeath(target, attacker)
	}
	// reflected damage (thorn items) can drop the attacker too
	if attacker.Alive && attacker.Stats.HP <= 0 {
		bc.resolveDeath(attacker, nil)
	}
}

// resolveDeath runs the dying unit's onDeath hooks; a hook that pulls
// HP back above zero (revive items) cancels the death. Otherwise the
// unit is marked dead, removed from the position store and the killer's
// onKill hooks fire.
func (bc *battleContext) resolveDeath(u *game.BattleUnit, killer *game.BattleUnit) {
	if !u.Alive {
		return
	}
	bc.catalog.RunOnDeath(u, killer, bc.state)
	if u.Stats.HP > 0 {
		return
	}
	u.Alive = false
	bc.positions.RemoveUnit(u.ID)
	ev := game.Event{Kind: game.EventDeath, UnitID: u.ID}
	if killer != nil {
		ev.TargetID = killer.ID
	}
	bc.state.Append(ev)
	if killer != nil && killer.Alive {
		bc.catalog.RunOnKill(killer, u, bc.state)
	}
}

// sweepDeaths resolves any unit whose HP dropped to zero outside the
// normal attack path (DoT ticks, reflected procs).
func (bc *battleContext) sweepDeaths() {
	for _, u := range bc.state.Units() {
		if u.Alive && u.Stats.HP <= 0 {
			bc.resolveDeath(u, nil)
		}
	}
}
