package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Orloaft/gridder-sub002/internal/engine"
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/items"
)

type unitEntry struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Role        string         `json:"role"` // hero | enemy
	HitPoints   int            `json:"hit_points"`
	Damage      int            `json:"damage"`
	Speed       int            `json:"speed"`
	Defense     int            `json:"defense"`
	CritChance  float64        `json:"crit_chance"`
	CritDamage  float64        `json:"crit_damage"`
	Evasion     float64        `json:"evasion"`
	Accuracy    float64        `json:"accuracy"`
	Penetration float64        `json:"penetration"`
	Lifesteal   float64        `json:"lifesteal"`
	Range       int            `json:"range"`
	Items       []string       `json:"items"`
	Abilities   []game.Ability `json:"abilities"`
}

type waveEntry struct {
	Enemies   []string        `json:"enemies"`
	Formation []game.Position `json:"formation"`
}

type rawConfig struct {
	UnitList []unitEntry `json:"unit_list"`
	Waves    []waveEntry `json:"waves"`
	Board    *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"board"`
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the unit roster, wave plan and server address.
type LoadedConfig struct {
	Heroes        []game.UnitTemplate
	Enemies       []game.UnitTemplate
	Waves         []engine.WaveSpec
	Board         engine.Board
	ServerAddress string
}

// HeroByID looks up a hero template.
func (c *LoadedConfig) HeroByID(id string) (game.UnitTemplate, bool) {
	for _, t := range c.Heroes {
		if t.ID == id {
			return t, true
		}
	}
	return game.UnitTemplate{}, false
}

// LoadConfig reads the configuration file at path and validates it
// against the item catalog. It requires the keys `unit_list` and
// `waves` (snake_case).
func LoadConfig(path string, catalog *items.Catalog) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if len(rc.UnitList) == 0 {
		return nil, fmt.Errorf("config file %s: unit_list is empty (provide 'unit_list' array)", path)
	}
	if len(rc.Waves) == 0 {
		return nil, fmt.Errorf("config file %s: waves is empty (provide 'waves' array)", path)
	}

	board := engine.DefaultBoard
	if rc.Board != nil {
		if rc.Board.Width <= 0 || rc.Board.Height <= 0 {
			return nil, fmt.Errorf("config file %s: board dimensions must be positive", path)
		}
		board = engine.Board{Width: rc.Board.Width, Height: rc.Board.Height}
	}

	out := &LoadedConfig{Board: board, ServerAddress: ":8080"}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}

	idSet := make(map[string]struct{}, len(rc.UnitList))
	enemyByID := make(map[string]game.UnitTemplate)
	for _, e := range rc.UnitList {
		if e.ID == "" {
			return nil, fmt.Errorf("config file %s: unit entry missing 'id'", path)
		}
		lid := strings.ToLower(strings.TrimSpace(e.ID))
		if _, exists := idSet[lid]; exists {
			return nil, fmt.Errorf("config file %s: duplicate unit id '%s'", path, e.ID)
		}
		idSet[lid] = struct{}{}
		if e.HitPoints <= 0 {
			return nil, fmt.Errorf("config file %s: unit '%s' needs positive hit_points", path, e.ID)
		}
		if e.CritChance > 0 && e.CritDamage < 1 {
			return nil, fmt.Errorf("config file %s: unit '%s' has crit_chance but crit_damage < 1", path, e.ID)
		}
		for _, it := range e.Items {
			if !catalog.Has(it) {
				return nil, fmt.Errorf("config file %s: unit '%s' references unknown item '%s'", path, e.ID, it)
			}
		}
		for _, ab := range e.Abilities {
			if err := validateAbility(e.ID, ab); err != nil {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		}
		t := game.UnitTemplate{
			ID:    e.ID,
			Name:  e.Name,
			Range: e.Range,
			Items: e.Items,
			Stats: game.Stats{
				MaxHP:       e.HitPoints,
				HP:          e.HitPoints,
				Damage:      e.Damage,
				Speed:       e.Speed,
				Defense:     e.Defense,
				CritChance:  e.CritChance,
				CritDamage:  e.CritDamage,
				Evasion:     e.Evasion,
				Accuracy:    e.Accuracy,
				Penetration: e.Penetration,
				Lifesteal:   e.Lifesteal,
			},
			Abilities: e.Abilities,
		}
		if t.Name == "" {
			t.Name = t.ID
		}
		if t.Range <= 0 {
			t.Range = 1
		}
		switch e.Role {
		case "hero":
			out.Heroes = append(out.Heroes, t)
		case "enemy":
			out.Enemies = append(out.Enemies, t)
			enemyByID[e.ID] = t
		default:
			return nil, fmt.Errorf("config file %s: unit '%s' has unknown role '%s' (want hero or enemy)", path, e.ID, e.Role)
		}
	}

	for wi, w := range rc.Waves {
		if len(w.Enemies) == 0 {
			return nil, fmt.Errorf("config file %s: wave %d has no enemies", path, wi+1)
		}
		if len(w.Formation) < len(w.Enemies) {
			return nil, fmt.Errorf("config file %s: wave %d formation covers %d of %d enemies", path, wi+1, len(w.Formation), len(w.Enemies))
		}
		cells := make(map[game.Position]struct{}, len(w.Formation))
		for _, p := range w.Formation {
			if !board.Contains(p) {
				return nil, fmt.Errorf("config file %s: wave %d formation cell (%d,%d) is off the board", path, wi+1, p.X, p.Y)
			}
			if _, dup := cells[p]; dup {
				return nil, fmt.Errorf("config file %s: wave %d formation repeats cell (%d,%d)", path, wi+1, p.X, p.Y)
			}
			cells[p] = struct{}{}
		}
		spec := engine.WaveSpec{Formation: w.Formation}
		for _, id := range w.Enemies {
			t, ok := enemyByID[id]
			if !ok {
				return nil, fmt.Errorf("config file %s: wave %d references unknown enemy '%s'", path, wi+1, id)
			}
			spec.Templates = append(spec.Templates, t)
		}
		out.Waves = append(out.Waves, spec)
	}

	return out, nil
}

func validateAbility(unitID string, ab game.Ability) error {
	if ab.ID == "" {
		return fmt.Errorf("unit '%s': ability missing 'id'", unitID)
	}
	if ab.Cooldown < 0 {
		return fmt.Errorf("unit '%s': ability '%s' has negative cooldown", unitID, ab.ID)
	}
	switch ab.Type {
	case game.AbilityOffensive, game.AbilityDefensive, game.AbilitySupport, game.AbilityUltimate:
	default:
		return fmt.Errorf("unit '%s': ability '%s' has unknown type '%s'", unitID, ab.ID, ab.Type)
	}
	if len(ab.Effects) == 0 {
		return fmt.Errorf("unit '%s': ability '%s' has no effects", unitID, ab.ID)
	}
	for _, eff := range ab.Effects {
		switch eff.Kind {
		case game.EffectDamage, game.EffectHeal, game.EffectBuff, game.EffectDebuff, game.EffectLifesteal, game.EffectShield:
		default:
			return fmt.Errorf("unit '%s': ability '%s' has unknown effect kind '%s'", unitID, ab.ID, eff.Kind)
		}
		switch eff.Selector {
		case game.SelectSelf, game.SelectSingleAlly, game.SelectSingleEnemy, game.SelectAllAllies, game.SelectAllEnemies, game.SelectAoE:
		default:
			return fmt.Errorf("unit '%s': ability '%s' has unknown selector '%s'", unitID, ab.ID, eff.Selector)
		}
		if eff.Selector == game.SelectAoE && eff.Radius <= 0 {
			return fmt.Errorf("unit '%s': ability '%s' aoe effect needs positive radius", unitID, ab.ID)
		}
		if (eff.Kind == game.EffectBuff || eff.Kind == game.EffectDebuff) && eff.StatusDuration <= 0 {
			return fmt.Errorf("unit '%s': ability '%s' buff/debuff needs positive status_duration", unitID, ab.ID)
		}
	}
	return nil
}
