package game

import "fmt"

// UnitTemplate is the immutable definition a BattleUnit instance is
// stamped from. Templates come from the config file; instances snapshot
// the stats so in-battle mutation never leaks back.
type UnitTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stats     Stats     `json:"stats"`
	Range     int       `json:"range"`
	Items     []string  `json:"items"`
	Abilities []Ability `json:"abilities"`
}

// NewBattleUnit instantiates a template for one battle. The index makes
// the instance id unique within the roster ("goblin-2").
func NewBattleUnit(t UnitTemplate, faction Faction, index int) *BattleUnit {
	st := t.Stats
	if st.HP == 0 {
		st.HP = st.MaxHP
	}
	abilities := make([]Ability, len(t.Abilities))
	copy(abilities, t.Abilities)
	for i := range abilities {
		abilities[i].CurrentCooldown = 0
	}
	items := make([]string, len(t.Items))
	copy(items, t.Items)
	return &BattleUnit{
		ID:         fmt.Sprintf("%s-%d", t.ID, index),
		TemplateID: t.ID,
		Name:       t.Name,
		Faction:    faction,
		Stats:      st,
		Range:      t.Range,
		Items:      items,
		Abilities:  abilities,
		Statuses:   make([]StatusEffect, 0, 4),
		Alive:      true,
	}
}
