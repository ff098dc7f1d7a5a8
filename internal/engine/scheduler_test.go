package engine

import (
	"testing"

	"github.com/Orloaft/gridder-sub002/internal/game"
)

func TestDecrementCooldownsFloorsAtZero(t *testing.T) {
	bc := newTestContext(1)
	u := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10})
	u.Abilities = []game.Ability{
		{ID: "a", Cooldown: 3, CurrentCooldown: 1},
		{ID: "b", Cooldown: 3, CurrentCooldown: 0},
	}
	bc.state.Heroes = []*game.BattleUnit{u}

	bc.decrementCooldowns()
	if u.Abilities[0].CurrentCooldown != 0 {
		t.Fatalf("expected cooldown 0, got %d", u.Abilities[0].CurrentCooldown)
	}
	bc.decrementCooldowns()
	if u.Abilities[0].CurrentCooldown != 0 || u.Abilities[1].CurrentCooldown != 0 {
		t.Fatalf("cooldowns must never drop below 0: %+v", u.Abilities)
	}
}

func TestActionOrderSpeedThenFactionThenIndex(t *testing.T) {
	bc := newTestContext(1)
	h1 := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10, Speed: 5})
	h2 := testUnit("h2", game.FactionHero, game.Stats{MaxHP: 10, HP: 10, Speed: 3})
	e1 := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10, Speed: 5})
	e2 := testUnit("e2", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10, Speed: 9})
	bc.state.Heroes = []*game.BattleUnit{h1, h2}
	bc.state.Enemies = []*game.BattleUnit{e1, e2}

	order := bc.actionOrder()
	want := []string{"e2", "h1", "e1", "h2"}
	for i, id := range want {
		if order[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (order %v)", i, id, order[i].ID, order)
		}
	}
}

func TestSpeedUpStatusAffectsOrder(t *testing.T) {
	bc := newTestContext(1)
	h := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10, Speed: 2})
	e := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10, Speed: 3})
	h.Statuses = []game.StatusEffect{{Type: game.StatusSpeedUp, Duration: 2, Magnitude: 5}}
	bc.state.Heroes = []*game.BattleUnit{h}
	bc.state.Enemies = []*game.BattleUnit{e}

	if order := bc.actionOrder(); order[0] != h {
		t.Fatalf("expected buffed hero to act first")
	}
}

func TestMoveTowardHoldsWhenBlocked(t *testing.T) {
	bc := newTestContext(1)
	mover := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10})
	mover.Pos = game.Position{X: 0, Y: 0}
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10})
	target.Pos = game.Position{X: 2, Y: 0}
	_ = bc.positions.InitializeUnit("h1", mover.Pos)
	_ = bc.positions.InitializeUnit("blocker", game.Position{X: 1, Y: 0})

	bc.moveToward(mover, target)
	if mover.Pos != (game.Position{X: 0, Y: 0}) {
		t.Fatalf("blocked unit must hold position, got %v", mover.Pos)
	}
	if hasEvent(bc.state.Events, game.EventMove) {
		t.Fatalf("no move event expected when blocked")
	}
}

func TestMoveTowardCommitsAndLogs(t *testing.T) {
	bc := newTestContext(1)
	mover := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10})
	mover.Pos = game.Position{X: 0, Y: 0}
	target := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10})
	target.Pos = game.Position{X: 3, Y: 2}
	_ = bc.positions.InitializeUnit("h1", mover.Pos)

	bc.moveToward(mover, target)
	if mover.Pos != (game.Position{X: 1, Y: 1}) {
		t.Fatalf("expected diagonal step to (1,1), got %v", mover.Pos)
	}
	stored, _ := bc.positions.PositionOf("h1")
	if stored != mover.Pos {
		t.Fatalf("store and unit position diverged: %v vs %v", stored, mover.Pos)
	}
	if !hasEvent(bc.state.Events, game.EventMove) {
		t.Fatalf("expected move event")
	}
}

func TestAbilityFallsBackToBasicAttack(t *testing.T) {
	bc := newTestContext(1)
	hero := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10, Damage: 3})
	hero.Pos = game.Position{X: 0, Y: 0}
	hero.Abilities = []game.Ability{{
		ID: "smash", Name: "Smash", Type: game.AbilityOffensive, Cooldown: 3, CurrentCooldown: 2,
		Effects: []game.AbilityEffect{{Kind: game.EffectDamage, Selector: game.SelectSingleEnemy, Amount: 9}},
	}}
	enemy := testUnit("e1", game.FactionEnemy, game.Stats{MaxHP: 10, HP: 10})
	enemy.Pos = game.Position{X: 1, Y: 0}
	_ = bc.positions.InitializeUnit("h1", hero.Pos)
	_ = bc.positions.InitializeUnit("e1", enemy.Pos)
	bc.state.Heroes = []*game.BattleUnit{hero}
	bc.state.Enemies = []*game.BattleUnit{enemy}

	bc.takeAction(hero)
	if hasEvent(bc.state.Events, game.EventAbilityUsed) {
		t.Fatalf("ability on cooldown must not fire")
	}
	if !hasEvent(bc.state.Events, game.EventAttack) {
		t.Fatalf("expected basic attack fallback")
	}
	if enemy.Stats.HP != 7 {
		t.Fatalf("expected 3 damage from basic attack, HP=%d", enemy.Stats.HP)
	}
}

func TestUseAbilityAllEnemies(t *testing.T) {
	bc := newTestContext(1)
	hero := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10})
	hero.Abilities = []game.Ability{{
		ID: "nova", Name: "Nova", Type: game.AbilityOffensive, Cooldown: 4,
		Effects: []game.AbilityEffect{{Kind: game.EffectDamage, Selector: game.SelectAllEnemies, Amount: 5}},
	}}
	e1 := unitAt("e1", 3, 0, 20)
	e2 := unitAt("e2", 4, 0, 20)
	bc.state.Heroes = []*game.BattleUnit{hero}
	bc.state.Enemies = []*game.BattleUnit{e1, e2}

	if !bc.useAbility(hero, e1) {
		t.Fatalf("ready ability with valid target should fire")
	}
	if hero.Abilities[0].CurrentCooldown != 4 {
		t.Fatalf("cooldown should reset to 4, got %d", hero.Abilities[0].CurrentCooldown)
	}
	if e1.Stats.HP != 15 || e2.Stats.HP != 15 {
		t.Fatalf("both enemies should take 5, got %d/%d", e1.Stats.HP, e2.Stats.HP)
	}
}

func TestUseAbilityHealTargetsLowestAlly(t *testing.T) {
	bc := newTestContext(1)
	healer := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 20, HP: 20})
	healer.Abilities = []game.Ability{{
		ID: "mend", Name: "Mend", Type: game.AbilitySupport, Cooldown: 2,
		Effects: []game.AbilityEffect{{Kind: game.EffectHeal, Selector: game.SelectSingleAlly, Amount: 6}},
	}}
	hurt := testUnit("h2", game.FactionHero, game.Stats{MaxHP: 20, HP: 4})
	bc.state.Heroes = []*game.BattleUnit{healer, hurt}

	if !bc.useAbility(healer, nil) {
		t.Fatalf("support ability needs no enemy target")
	}
	if hurt.Stats.HP != 10 {
		t.Fatalf("expected lowest-HP ally healed to 10, got %d", hurt.Stats.HP)
	}
}

func TestUseAbilityAoERadius(t *testing.T) {
	bc := newTestContext(1)
	hero := testUnit("h1", game.FactionHero, game.Stats{MaxHP: 10, HP: 10})
	hero.Abilities = []game.Ability{{
		ID: "blast", Name: "Blast", Type: game.AbilityOffensive, Cooldown: 3,
		Effects: []game.AbilityEffect{{Kind: game.EffectDamage, Selector: game.SelectAoE, Amount: 4, Radius: 1}},
	}}
	center := unitAt("e1", 5, 2, 20)
	close := unitAt("e2", 6, 3, 20)
	far := unitAt("e3", 8, 2, 20)
	bc.state.Heroes = []*game.BattleUnit{hero}
	bc.state.Enemies = []*game.BattleUnit{center, close, far}

	bc.useAbility(hero, center)
	if center.Stats.HP != 16 || close.Stats.HP != 16 {
		t.Fatalf("units within radius should take damage, got %d/%d", center.Stats.HP, close.Stats.HP)
	}
	if far.Stats.HP != 20 {
		t.Fatalf("unit outside radius must be untouched, got %d", far.Stats.HP)
	}
}
