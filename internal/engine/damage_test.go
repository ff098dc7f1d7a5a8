package engine

import (
	"testing"

	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/items"
)

func newTestContext(seed int64) *battleContext {
	return newBattleContext(game.NewBattleState(seed, 1), items.DefaultCatalog(), DefaultBoard)
}

func testUnit(id string, f game.Faction, stats game.Stats) *game.BattleUnit {
	return &game.BattleUnit{ID: id, Faction: f, Stats: stats, Range: 1, Alive: true}
}

func hasEvent(events []game.Event, kind game.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestResolveAttackBasicMitigation(t *testing.T) {
	// damage 10 vs defense 3: expect 7 damage, no crit/evade events
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 20, Defense: 3})

	r := bc.resolveAttack(attacker, target, 10)
	if r.IsCrit || r.IsEvaded {
		t.Fatalf("expected plain hit, got %+v", r)
	}
	if r.FinalDamage != 7 {
		t.Fatalf("expected final damage 7, got %d", r.FinalDamage)
	}
	bc.applyDamage(attacker, target, r)
	if target.Stats.HP != 13 {
		t.Fatalf("expected target HP 13, got %d", target.Stats.HP)
	}
	if hasEvent(bc.state.Events, game.EventCritical) || hasEvent(bc.state.Events, game.EventEvaded) {
		t.Fatalf("no crit/evade events expected: %+v", bc.state.Events)
	}
}

func TestResolveAttackEvaded(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 20, Evasion: 1.0})

	r := bc.resolveAttack(attacker, target, 10)
	if !r.IsEvaded {
		t.Fatalf("expected guaranteed evade, got %+v", r)
	}
	if r.FinalDamage != 0 {
		t.Fatalf("evaded attack must deal 0, got %d", r.FinalDamage)
	}
	bc.applyDamage(attacker, target, r)
	if target.Stats.HP != 20 {
		t.Fatalf("HP must be unchanged on evade, got %d", target.Stats.HP)
	}
	if !hasEvent(bc.state.Events, game.EventEvaded) {
		t.Fatalf("expected evaded event")
	}
}

func TestResolveAttackCritMultiplier(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10, CritChance: 1.0, CritDamage: 1.5})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 40, HP: 40})

	r := bc.resolveAttack(attacker, target, 10)
	if !r.IsCrit {
		t.Fatalf("expected guaranteed crit")
	}
	if r.FinalDamage != 15 {
		t.Fatalf("expected 10 * 1.5 = 15, got %d", r.FinalDamage)
	}
	if !hasEvent(bc.state.Events, game.EventCritical) {
		t.Fatalf("expected critical event")
	}
}

func TestDamageFloorOfOne(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 2})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 20, Defense: 100})

	r := bc.resolveAttack(attacker, target, 2)
	if r.FinalDamage != 1 {
		t.Fatalf("landed attacks deal at least 1, got %d", r.FinalDamage)
	}
}

func TestPenetrationReducesDefense(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10, Penetration: 0.5})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 20, Defense: 8})

	r := bc.resolveAttack(attacker, target, 10)
	// defense 8 halved to 4 by penetration
	if r.FinalDamage != 6 {
		t.Fatalf("expected 10 - 4 = 6, got %d", r.FinalDamage)
	}
}

func TestAccuracyCountersEvasion(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10, Accuracy: 1.0})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 20, Evasion: 1.0})

	r := bc.resolveAttack(attacker, target, 10)
	if r.IsEvaded {
		t.Fatalf("full accuracy must negate evasion")
	}
}

func TestKillFiresDeathAndKillHooks(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10})
	attacker.Items = []string{"skull_totem"}
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 5, HP: 5})
	_ = bc.positions.InitializeUnit("e1", game.Position{X: 3, Y: 3})

	r := bc.resolveAttack(attacker, target, 10)
	bc.applyDamage(attacker, target, r)

	if target.Alive {
		t.Fatalf("target should be dead")
	}
	if !hasEvent(bc.state.Events, game.EventDeath) {
		t.Fatalf("expected death event")
	}
	if attacker.Stats.Damage != 12 {
		t.Fatalf("onKill hook should have granted +2 damage, got %d", attacker.Stats.Damage)
	}
	if bc.positions.Occupied(game.Position{X: 3, Y: 3}) {
		t.Fatalf("dead unit must free its cell")
	}
}

func TestPhoenixFeatherCancelsDeath(t *testing.T) {
	bc := newTestContext(1)
	attacker := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 30, HP: 30, Damage: 10})
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 20, HP: 5})
	target.Items = []string{"phoenix_feather"}

	r := bc.resolveAttack(attacker, target, 10)
	bc.applyDamage(attacker, target, r)

	if !target.Alive {
		t.Fatalf("phoenix feather should cancel the death")
	}
	if target.Stats.HP != 6 {
		t.Fatalf("expected revive at 30%% of 20 = 6 HP, got %d", target.Stats.HP)
	}
	if hasEvent(bc.state.Events, game.EventDeath) {
		t.Fatalf("cancelled death must not log a death event")
	}
}
