package items

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// Metadata counter keys used by counter-based procs.
const (
	counterWarDrumAttacks  = "war_drum_attacks"
	counterPhoenixConsumed = "phoenix_feather_consumed"
	counterAdrenalineUsed  = "adrenaline_vial_used"
)

// warDrumEvery is the attack count between war drum procs.
const warDrumEvery = 5

// DefaultCatalog returns the built-in item set. Probabilistic procs
// roll from the battle's seeded RNG inside their handler, so proc
// sequences replay exactly for a given seed.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Item{
		{
			ID:          "vampiric_blade",
			Name:        "Vampiric Blade",
			Description: "Heals the wielder for 25% of damage dealt.",
			Hooks: Hooks{
				OnAttack: func(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int {
					if damage <= 0 {
						return damage
					}
					heal := damage / 4
					if heal < 1 {
						heal = 1
					}
					if attacker.Stats.HP+heal > attacker.Stats.MaxHP {
						heal = attacker.Stats.MaxHP - attacker.Stats.HP
					}
					if heal > 0 {
						attacker.Stats.HP += heal
						s.Append(game.Event{Kind: game.EventHeal, UnitID: attacker.ID, Amount: heal, Source: "vampiric_blade"})
					}
					return damage
				},
			},
		},
		{
			ID:          "lucky_coin",
			Name:        "Lucky Coin",
			Description: "10% chance to double attack damage.",
			Hooks: Hooks{
				OnAttack: func(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int {
					if damage > 0 && s.Rand.Float64() < 0.10 {
						return damage * 2
					}
					return damage
				},
			},
		},
		{
			ID:          "war_drum",
			Name:        "War Drum",
			Description: "Every 5th attack deals double damage.",
			Hooks: Hooks{
				OnAttack: func(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int {
					n := attacker.Counter(counterWarDrumAttacks) + 1
					attacker.SetCounter(counterWarDrumAttacks, n)
					if n%warDrumEvery == 0 && damage > 0 {
						return damage * 2
					}
					return damage
				},
			},
		},
		{
			ID:          "ember_brand",
			Name:        "Ember Brand",
			Description: "20% chance to set the target burning for 2 turns.",
			Hooks: Hooks{
				OnAttack: func(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int {
					if damage > 0 && s.Rand.Float64() < 0.20 {
						status.Apply(target, game.StatusEffect{
							Type:      game.StatusBurning,
							Duration:  2,
							Magnitude: 3,
							Source:    "ember_brand",
						}, s)
					}
					return damage
				},
			},
		},
		{
			ID:          "thorn_mail",
			Name:        "Thorn Mail",
			Description: "Reflects 20% of damage taken back at the attacker.",
			Hooks: Hooks{
				OnDefend: func(defender, attacker *game.BattleUnit, damage int, s *game.BattleState) int {
					if damage <= 0 || attacker == nil {
						return damage
					}
					reflect := damage / 5
					if reflect < 1 {
						reflect = 1
					}
					attacker.Stats.HP -= reflect
					s.Append(game.Event{Kind: game.EventDamage, UnitID: defender.ID, TargetID: attacker.ID, Amount: reflect, Source: "thorn_mail"})
					return damage
				},
			},
		},
		{
			ID:          "tower_shield",
			Name:        "Tower Shield",
			Description: "No single hit can deal more than half the bearer's max HP.",
			Hooks: Hooks{
				OnDefend: func(defender, attacker *game.BattleUnit, damage int, s *game.BattleState) int {
					cap := defender.Stats.MaxHP / 2
					if cap < 1 {
						cap = 1
					}
					if damage > cap {
						return cap
					}
					return damage
				},
			},
		},
		{
			ID:          "phoenix_feather",
			Name:        "Phoenix Feather",
			Description: "Once per battle, revive with 30% HP on death.",
			Hooks: Hooks{
				OnDeath: func(u, killer *game.BattleUnit, s *game.BattleState) {
					if u.Counter(counterPhoenixConsumed) > 0 {
						return
					}
					u.SetCounter(counterPhoenixConsumed, 1)
					restored := u.Stats.MaxHP * 30 / 100
					if restored < 1 {
						restored = 1
					}
					u.Stats.HP = restored
					s.Append(game.Event{Kind: game.EventHeal, UnitID: u.ID, Amount: restored, Source: "phoenix_feather"})
				},
			},
		},
		{
			ID:          "skull_totem",
			Name:        "Skull Totem",
			Description: "Each kill permanently grants +2 damage this battle.",
			Hooks: Hooks{
				OnKill: func(killer, victim *game.BattleUnit, s *game.BattleState) {
					killer.Stats.Damage += 2
				},
			},
		},
		{
			ID:          "regen_ring",
			Name:        "Regeneration Ring",
			Description: "Restores 2 HP at the start of each turn.",
			Hooks: Hooks{
				OnTurnStart: func(u *game.BattleUnit, s *game.BattleState) {
					if u.Stats.HP >= u.Stats.MaxHP {
						return
					}
					heal := 2
					if u.Stats.HP+heal > u.Stats.MaxHP {
						heal = u.Stats.MaxHP - u.Stats.HP
					}
					u.Stats.HP += heal
					s.Append(game.Event{Kind: game.EventHeal, UnitID: u.ID, Amount: heal, Source: "regen_ring"})
				},
			},
		},
		{
			ID:          "adrenaline_vial",
			Name:        "Adrenaline Vial",
			Description: "Once per battle, gain speed for 3 turns when below 25% HP.",
			Hooks: Hooks{
				OnTurnEnd: func(u *game.BattleUnit, s *game.BattleState) {
					if u.Counter(counterAdrenalineUsed) > 0 {
						return
					}
					if u.Stats.HP*4 >= u.Stats.MaxHP {
						return
					}
					u.SetCounter(counterAdrenalineUsed, 1)
					status.Apply(u, game.StatusEffect{
						Type:      game.StatusSpeedUp,
						Duration:  3,
						Magnitude: 2,
						Source:    "adrenaline_vial",
					}, s)
				},
			},
		},
	})
}
