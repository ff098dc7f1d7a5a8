package status

import (
	"testing"

	"github.com/Orloaft/gridder-sub002/internal/game"
)

func newUnit() *game.BattleUnit {
	return &game.BattleUnit{
		ID:      "u1",
		Faction: game.FactionHero,
		Stats:   game.Stats{MaxHP: 50, HP: 50, Defense: 10, Evasion: 1.0},
		Alive:   true,
	}
}

func TestApplyDoesNotStack(t *testing.T) {
	s := game.NewBattleState(1, 1)
	u := newUnit()

	if !Apply(u, game.StatusEffect{Type: game.StatusPoison, Duration: 3, Magnitude: 2, Source: "venom_dart"}, s) {
		t.Fatalf("first application should succeed")
	}
	if Apply(u, game.StatusEffect{Type: game.StatusPoison, Duration: 10, Magnitude: 5, Source: "venom_dart"}, s) {
		t.Fatalf("second application of same type should be ignored")
	}
	if len(u.Statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(u.Statuses))
	}
	// existing duration must not be refreshed
	if u.Statuses[0].Duration != 3 || u.Statuses[0].Magnitude != 2 {
		t.Fatalf("existing effect was modified: %+v", u.Statuses[0])
	}
}

func TestDotBypassesEvasionAndDefense(t *testing.T) {
	s := game.NewBattleState(1, 1)
	u := newUnit() // evasion 1.0, defense 10: any resolver attack would miss or be mitigated

	Apply(u, game.StatusEffect{Type: game.StatusBurning, Duration: 2, Magnitude: 4, Source: "ember_brand"}, s)
	Tick(u, s)

	if u.Stats.HP != 46 {
		t.Fatalf("expected full 4 DoT damage through evasion/defense, HP=%d", u.Stats.HP)
	}
	last := s.Events[len(s.Events)-1]
	if last.Kind != game.EventDamage || last.TargetID != "u1" {
		t.Fatalf("expected damage event targeting the afflicted unit, got %+v", last)
	}
	if last.UnitID != "" {
		t.Fatalf("DoT ticks have no acting unit, got unit_id %q", last.UnitID)
	}
	if last.Source != "ember_brand" || last.Status != game.StatusBurning {
		t.Fatalf("attribution belongs in source/status, got %+v", last)
	}
}

func TestTickDecrementsAndExpires(t *testing.T) {
	s := game.NewBattleState(1, 1)
	u := newUnit()
	Apply(u, game.StatusEffect{Type: game.StatusPoison, Duration: 2, Magnitude: 1, Source: "x"}, s)

	Tick(u, s)
	if len(u.Statuses) != 1 || u.Statuses[0].Duration != 1 {
		t.Fatalf("expected duration 1 after first tick, got %+v", u.Statuses)
	}
	Tick(u, s)
	if len(u.Statuses) != 0 {
		t.Fatalf("expected effect removed after second tick")
	}
	last := s.Events[len(s.Events)-1]
	if last.Kind != game.EventStatusExpired || last.Status != game.StatusPoison {
		t.Fatalf("expected status_expired event, got %+v", last)
	}
}

func TestStunAndInvisibleFlags(t *testing.T) {
	s := game.NewBattleState(1, 1)
	u := newUnit()
	if IsStunned(u) {
		t.Fatalf("fresh unit should not be stunned")
	}
	Apply(u, game.StatusEffect{Type: game.StatusStun, Duration: 1, Source: "x"}, s)
	if !IsStunned(u) {
		t.Fatalf("expected stunned after applying stun")
	}
	Apply(u, game.StatusEffect{Type: game.StatusInvisible, Duration: 2, Source: "x"}, s)
	if !IsInvisible(u) {
		t.Fatalf("expected invisible after applying invisibility")
	}
}

func TestMagnitudeSumsStatBoosts(t *testing.T) {
	s := game.NewBattleState(1, 1)
	u := newUnit()
	Apply(u, game.StatusEffect{Type: game.StatusDamageUp, Duration: 3, Magnitude: 5, Source: "x"}, s)
	if got := Magnitude(u, game.StatusDamageUp); got != 5 {
		t.Fatalf("expected magnitude 5, got %d", got)
	}
	if got := Magnitude(u, game.StatusDefenseUp); got != 0 {
		t.Fatalf("expected 0 for absent status, got %d", got)
	}
}
