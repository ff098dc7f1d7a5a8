package engine

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/status"
)

// damageWithModifiers returns a unit's attack damage after stat-boost
// statuses and transient single-turn buffs.
func damageWithModifiers(u *game.BattleUnit) int {
	d := u.Stats.Damage + status.Magnitude(u, game.StatusDamageUp)
	for i := range u.Transient {
		d += u.Transient[i].DamageBonus
	}
	if d < 0 {
		d = 0
	}
	return d
}

// defenseWithModifiers returns a unit's defense after statuses and
// transient buffs.
func defenseWithModifiers(u *game.BattleUnit) int {
	d := u.Stats.Defense + status.Magnitude(u, game.StatusDefenseUp)
	for i := range u.Transient {
		d += u.Transient[i].DefenseBonus
	}
	if d < 0 {
		d = 0
	}
	return d
}

// speedWithModifiers returns a unit's initiative value after statuses.
func speedWithModifiers(u *game.BattleUnit) int {
	s := u.Stats.Speed + status.Magnitude(u, game.StatusSpeedUp)
	if s < 0 {
		s = 0
	}
	return s
}
