package engine

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// useAbility fires the caster's first ready ability against the picked
// target. Failure (all on cooldown, caster dead, no valid target) is
// silent: the scheduler falls back to a basic attack. Returns whether
// an ability was used.
func (bc *battleContext) useAbility(caster, target *game.BattleUnit) bool {
	if !caster.Alive {
		return false
	}
	for i := range caster.Abilities {
		ab := &caster.Abilities[i]
		if ab.CurrentCooldown != 0 {
			continue
		}
		if !bc.abilityApplies(caster, target, ab) {
			continue
		}
		ab.CurrentCooldown = ab.Cooldown
		bc.state.Append(game.Event{Kind: game.EventAbilityUsed, UnitID: caster.ID, Ability: ab.Name})
		for _, eff := range ab.Effects {
			bc.resolveEffect(caster, target, ab, eff)
			if !caster.Alive {
				break
			}
		}
		return true
	}
	return false
}

// abilityApplies checks the ability has at least one valid target.
// Offensive abilities need a living enemy within the ability's range
// (unlimited when 0); defensive/support ones always apply.
func (bc *battleContext) abilityApplies(caster, target *game.BattleUnit, ab *game.Ability) bool {
	if ab.Type != game.AbilityOffensive && ab.Type != game.AbilityUltimate {
		return true
	}
	if target == nil || !target.Alive {
		return false
	}
	if ab.Range > 0 {
		return len(InRange(caster.Pos, ab.Range, []*game.BattleUnit{target})) > 0
	}
	return true
}

// resolveEffect applies one entry of an ability's effect list to every
// unit its selector resolves to. Damage effects route through the
// damage resolver so item and status hooks apply uniformly whether
// damage came from a basic attack or an ability.
func (bc *battleContext) resolveEffect(caster, target *game.BattleUnit, ab *game.Ability, eff game.AbilityEffect) {
	for _, u := range bc.selectTargets(caster, target, eff) {
		if !u.Alive {
			continue
		}
		switch eff.Kind {
		case game.EffectDamage:
			r := bc.resolveAttack(caster, u, eff.Amount)
			bc.applyDamage(caster, u, r)
		case game.EffectHeal:
			bc.heal(u, eff.Amount, ab.Name)
		case game.EffectLifesteal:
			r := bc.resolveAttack(caster, u, eff.Amount)
			bc.applyDamage(caster, u, r)
			if !r.IsEvaded && r.FinalDamage > 0 {
				bc.heal(caster, r.FinalDamage/2, ab.Name)
			}
		case game.EffectBuff, game.EffectDebuff:
			status.Apply(u, game.StatusEffect{
				Type:      eff.Status,
				Duration:  eff.StatusDuration,
				Magnitude: eff.Amount,
				Source:    ab.Name,
			}, bc.state)
		case game.EffectShield:
			status.Apply(u, game.StatusEffect{
				Type:      game.StatusDefenseUp,
				Duration:  eff.StatusDuration,
				Magnitude: eff.Amount,
				Source:    ab.Name,
			}, bc.state)
		}
	}
}

// selectTargets resolves an effect's target selector against the
// current rosters, in roster order. AoE resolves via the targeting
// range filter centered on the primary target.
func (bc *battleContext) selectTargets(caster, target *game.BattleUnit, eff game.AbilityEffect) []*game.BattleUnit {
	switch eff.Selector {
	case game.SelectSelf:
		return []*game.BattleUnit{caster}
	case game.SelectSingleAlly:
		ally := LowestHP(bc.state.Allies(caster.Faction))
		if ally == nil {
			return nil
		}
		return []*game.BattleUnit{ally}
	case game.SelectSingleEnemy:
		if target == nil {
			return nil
		}
		return []*game.BattleUnit{target}
	case game.SelectAllAllies:
		return bc.state.Allies(caster.Faction)
	case game.SelectAllEnemies:
		return bc.state.Opponents(caster.Faction)
	case game.SelectAoE:
		if target == nil {
			return nil
		}
		return InRange(target.Pos, eff.Radius, bc.state.Opponents(caster.Faction))
	default:
		bc.warn("unknown target selector "+string(eff.Selector), caster.ID)
		return nil
	}
}

// heal restores HP up to max and logs it.
func (bc *battleContext) heal(u *game.BattleUnit, amount int, source string) {
	if amount <= 0 || !u.Alive {
		return
	}
	if u.Stats.HP+amount > u.Stats.MaxHP {
		amount = u.Stats.MaxHP - u.Stats.HP
	}
	if amount <= 0 {
		return
	}
	u.Stats.HP += amount
	bc.state.Append(game.Event{Kind: game.EventHeal, UnitID: u.ID, Amount: amount, Source: source})
}

// decrementCooldowns ticks every living unit's ability cooldowns down
// by one, floored at zero. Cooldowns never increase except on use.
func (bc *battleContext) decrementCooldowns() {
	for _, u := range bc.state.Units() {
		if !u.Alive {
			continue
		}
		for i := range u.Abilities {
			if u.Abilities[i].CurrentCooldown > 0 {
				u.Abilities[i].CurrentCooldown--
			}
		}
	}
}
