// Package status implements buff/debuff/DoT bookkeeping for battle
// units: application, per-tick damage, duration decay and expiry.
package status

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
)

// Apply attaches an effect to a unit and appends a status_applied event.
// Effects do not stack: when an effect of the same type is already
// present the new application is ignored and the existing duration is
// NOT refreshed. Returns false when the application was ignored.
func Apply(u *game.BattleUnit, eff game.StatusEffect, s *game.BattleState) bool {
	if eff.Duration <= 0 {
		return false
	}
	if u.HasStatus(eff.Type) {
		return false
	}
	u.Statuses = append(u.Statuses, eff)
	s.Append(game.Event{
		Kind:   game.EventStatusApplied,
		UnitID: u.ID,
		Status: eff.Type,
		Amount: eff.Magnitude,
		Source: eff.Source,
	})
	return true
}

// Tick advances all of a unit's status effects by one turn: damaging
// effects deal their per-tick damage, every duration decrements, and
// effects reaching zero are removed with a status_expired event.
//
// DoT damage deliberately bypasses the damage resolver: it ignores
// evasion and defense and is applied to HP directly.
func Tick(u *game.BattleUnit, s *game.BattleState) {
	if !u.Alive {
		return
	}
	kept := u.Statuses[:0]
	for _, eff := range u.Statuses {
		if eff.IsDamaging() && eff.Magnitude > 0 {
			u.Stats.HP -= eff.Magnitude
			// no acting unit: the tick itself deals the damage, the
			// attribution lives in Source
			s.Append(game.Event{
				Kind:     game.EventDamage,
				TargetID: u.ID,
				Amount:   eff.Magnitude,
				Status:   eff.Type,
				Source:   eff.Source,
			})
		}
		eff.Duration--
		if eff.Duration <= 0 {
			s.Append(game.Event{
				Kind:   game.EventStatusExpired,
				UnitID: u.ID,
				Status: eff.Type,
				Source: eff.Source,
			})
			continue
		}
		kept = append(kept, eff)
	}
	u.Statuses = kept
}

// IsStunned reports whether the unit must skip its action this tick.
// The scheduler interprets the flag; the status engine only tracks it.
func IsStunned(u *game.BattleUnit) bool {
	return u.HasStatus(game.StatusStun)
}

// IsInvisible reports whether the unit is hidden from targeting.
func IsInvisible(u *game.BattleUnit) bool {
	return u.HasStatus(game.StatusInvisible)
}

// Magnitude returns the summed magnitude of all active effects of the
// given type (0 when none). Used by the stat modifier helpers.
func Magnitude(u *game.BattleUnit, t game.StatusType) int {
	total := 0
	for i := range u.Statuses {
		if u.Statuses[i].Type == t {
			total += u.Statuses[i].Magnitude
		}
	}
	return total
}
