// Package items defines the equippable item catalog and the proc hook
// system. Each item registers handlers for a fixed set of extension
// points; the engine runs them in equip order, and damage-transforming
// hooks chain (each receives the previous handler's output).
package items

import (
	"sort"

	"github.com/Orloaft/gridder-sub002/internal/game"
)

// Hooks are the five extension points an item may handle. Handlers may
// mutate unit HP/status/metadata and append events, but never branch
// the scheduler. A nil handler means the item does not proc on that
// point.
type Hooks struct {
	// OnAttack transforms outgoing damage after base resolution.
	OnAttack func(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int
	// OnDefend transforms incoming damage; handlers chain in equip order.
	OnDefend func(defender, attacker *game.BattleUnit, damage int, s *game.BattleState) int
	// OnTurnStart fires before the unit acts each tick.
	OnTurnStart func(u *game.BattleUnit, s *game.BattleState)
	// OnTurnEnd fires after all units have acted each tick.
	OnTurnEnd func(u *game.BattleUnit, s *game.BattleState)
	// OnKill fires on the killer when its attack is lethal.
	OnKill func(killer, victim *game.BattleUnit, s *game.BattleState)
	// OnDeath fires on the dying unit before it is marked dead; a hook
	// that restores HP above zero cancels the death (revive items).
	OnDeath func(u, killer *game.BattleUnit, s *game.BattleState)
}

// Item is one equippable definition. Classification is decided once
// here: everything in the catalog is equipment with proc hooks; there
// is no secondary "kind" field to cross-check.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Hooks       Hooks  `json:"-"`
}

// Catalog maps item ids to definitions.
type Catalog struct {
	byID map[string]Item
}

// NewCatalog builds a catalog from the given items.
func NewCatalog(list []Item) *Catalog {
	m := make(map[string]Item, len(list))
	for _, it := range list {
		m[it.ID] = it
	}
	return &Catalog{byID: m}
}

// Get returns an item definition by id.
func (c *Catalog) Get(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Has reports whether the catalog knows the id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns all items sorted by id for stable API responses.
func (c *Catalog) List() []Item {
	out := make([]Item, 0, len(c.byID))
	for _, it := range c.byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunOnAttack chains the attacker's onAttack handlers over the damage
// value in equip order and returns the final amount.
func (c *Catalog) RunOnAttack(attacker, target *game.BattleUnit, damage int, s *game.BattleState) int {
	for _, id := range attacker.Items {
		it, ok := c.byID[id]
		if !ok || it.Hooks.OnAttack == nil {
			continue
		}
		damage = it.Hooks.OnAttack(attacker, target, damage, s)
	}
	return damage
}

// RunOnDefend chains the defender's onDefend handlers over the damage
// value in equip order and returns the final amount.
func (c *Catalog) RunOnDefend(defender, attacker *game.BattleUnit, damage int, s *game.BattleState) int {
	for _, id := range defender.Items {
		it, ok := c.byID[id]
		if !ok || it.Hooks.OnDefend == nil {
			continue
		}
		damage = it.Hooks.OnDefend(defender, attacker, damage, s)
	}
	return damage
}

// RunTurnStart fires all onTurnStart handlers of a unit's items.
func (c *Catalog) RunTurnStart(u *game.BattleUnit, s *game.BattleState) {
	for _, id := range u.Items {
		if it, ok := c.byID[id]; ok && it.Hooks.OnTurnStart != nil {
			it.Hooks.OnTurnStart(u, s)
		}
	}
}

// RunTurnEnd fires all onTurnEnd handlers of a unit's items.
func (c *Catalog) RunTurnEnd(u *game.BattleUnit, s *game.BattleState) {
	for _, id := range u.Items {
		if it, ok := c.byID[id]; ok && it.Hooks.OnTurnEnd != nil {
			it.Hooks.OnTurnEnd(u, s)
		}
	}
}

// RunOnDeath fires the dying unit's onDeath handlers. killer may be nil
// (DoT and reflected damage have no attributable killer).
func (c *Catalog) RunOnDeath(u, killer *game.BattleUnit, s *game.BattleState) {
	for _, id := range u.Items {
		if it, ok := c.byID[id]; ok && it.Hooks.OnDeath != nil {
			it.Hooks.OnDeath(u, killer, s)
		}
	}
}

// RunOnKill fires the killer's onKill handlers.
func (c *Catalog) RunOnKill(killer, victim *game.BattleUnit, s *game.BattleState) {
	for _, id := range killer.Items {
		if it, ok := c.byID[id]; ok && it.Hooks.OnKill != nil {
			it.Hooks.OnKill(killer, victim, s)
		}
	}
}
