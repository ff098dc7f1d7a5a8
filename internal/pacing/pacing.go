// Package pacing carries the difficulty scaling the external pacing
// system feeds into a simulation: faction-wide stat multipliers plus a
// set of status effects injected on enemies at spawn. It is passed
// explicitly into the orchestrator at call time; there is no ambient
// global.
package pacing

import "github.com/Orloaft/gridder-sub002/internal/game"

// Modifiers scales enemy stats and injects spawn statuses.
type Modifiers struct {
	HPScale     float64          `json:"hp_scale"`
	DamageScale float64          `json:"damage_scale"`
	SpeedScale  float64          `json:"speed_scale"`
	Statuses    []game.StatusType `json:"statuses,omitempty"`
}

// Default is the neutral modifier set (scale 1.0, no statuses).
func Default() Modifiers {
	return Modifiers{HPScale: 1, DamageScale: 1, SpeedScale: 1}
}

// ApplyToStats scales a stat block in place. Zero scales are treated
// as 1 so a zero-value Modifiers is neutral.
func (m Modifiers) ApplyToStats(st *game.Stats) {
	st.MaxHP = scale(st.MaxHP, m.HPScale)
	st.HP = scale(st.HP, m.HPScale)
	st.Damage = scale(st.Damage, m.DamageScale)
	st.Speed = scale(st.Speed, m.SpeedScale)
}

// SpawnStatuses returns the status effects to apply to a freshly
// spawned enemy. Injected effects last the whole battle.
func (m Modifiers) SpawnStatuses(source string) []game.StatusEffect {
	out := make([]game.StatusEffect, 0, len(m.Statuses))
	for _, t := range m.Statuses {
		out = append(out, game.StatusEffect{Type: t, Duration: 9999, Magnitude: 1, Source: source})
	}
	return out
}

func scale(v int, f float64) int {
	if f == 0 || f == 1 {
		return v
	}
	scaled := int(float64(v) * f)
	if v > 0 && scaled < 1 {
		scaled = 1
	}
	return scaled
}
