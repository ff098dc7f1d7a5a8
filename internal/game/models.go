package game

// Faction identifies which side of the battle a unit fights for.
type Faction string

const (
	FactionHero  Faction = "hero"
	FactionEnemy Faction = "enemy"
)

// Position is a cell on the battle grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Stats is the mutable stat block of a battle unit. HP is the only field
// the engine writes during combat; everything else is read through the
// modifier helpers so statuses and transient buffs apply uniformly.
type Stats struct {
	MaxHP       int     `json:"max_hp"`
	HP          int     `json:"hp"`
	Damage      int     `json:"damage"`
	Speed       int     `json:"speed"`
	Defense     int     `json:"defense"`
	CritChance  float64 `json:"crit_chance"`
	CritDamage  float64 `json:"crit_damage"`
	Evasion     float64 `json:"evasion"`
	Accuracy    float64 `json:"accuracy"`
	Penetration float64 `json:"penetration"`
	Lifesteal   float64 `json:"lifesteal"`
}

// StatusType tags a status effect. The set is closed; the engine switches
// exhaustively on it.
type StatusType string

const (
	StatusBurning   StatusType = "burning"
	StatusPoison    StatusType = "poison"
	StatusStun      StatusType = "stun"
	StatusInvisible StatusType = "invisible"
	StatusDamageUp  StatusType = "damage_up"
	StatusDefenseUp StatusType = "defense_up"
	StatusSpeedUp   StatusType = "speed_up"
)

// StatusEffect is one active buff/debuff/DoT on a unit.
// Invariant: Duration > 0 while the effect is present.
type StatusEffect struct {
	Type      StatusType `json:"type"`
	Duration  int        `json:"duration"`
	Magnitude int        `json:"magnitude"`
	Source    string     `json:"source"`
}

// IsDamaging reports whether the status deals damage each tick.
func (s StatusEffect) IsDamaging() bool {
	return s.Type == StatusBurning || s.Type == StatusPoison
}

// AbilityType is a coarse classification used by the UI and by target
// validation (defensive/support abilities may fire without an enemy target).
type AbilityType string

const (
	AbilityOffensive AbilityType = "offensive"
	AbilityDefensive AbilityType = "defensive"
	AbilitySupport   AbilityType = "support"
	AbilityUltimate  AbilityType = "ultimate"
)

// EffectKind tags one concrete effect of an ability.
type EffectKind string

const (
	EffectDamage    EffectKind = "damage"
	EffectHeal      EffectKind = "heal"
	EffectBuff      EffectKind = "buff"
	EffectDebuff    EffectKind = "debuff"
	EffectLifesteal EffectKind = "lifesteal"
	EffectShield    EffectKind = "shield"
)

// TargetSelector decides which units an ability effect resolves against.
type TargetSelector string

const (
	SelectSelf        TargetSelector = "self"
	SelectSingleAlly  TargetSelector = "single_ally"
	SelectSingleEnemy TargetSelector = "single_enemy"
	SelectAllAllies   TargetSelector = "all_allies"
	SelectAllEnemies  TargetSelector = "all_enemies"
	SelectAoE         TargetSelector = "aoe"
)

// AbilityEffect is one entry of an ability's ordered effect list.
// Status/StatusDuration are only meaningful for buff/debuff kinds;
// Radius only for the AoE selector.
type AbilityEffect struct {
	Kind           EffectKind     `json:"kind"`
	Selector       TargetSelector `json:"selector"`
	Amount         int            `json:"amount"`
	Status         StatusType     `json:"status,omitempty"`
	StatusDuration int            `json:"status_duration,omitempty"`
	Radius         int            `json:"radius,omitempty"`
}

// Ability is a unit skill with a cooldown. Usable only while
// CurrentCooldown == 0; using it resets CurrentCooldown to Cooldown.
type Ability struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            AbilityType     `json:"type"`
	Cooldown        int             `json:"cooldown"`
	CurrentCooldown int             `json:"current_cooldown"`
	Range           int             `json:"range"`
	Effects         []AbilityEffect `json:"effects"`
}

// TransientBuff is a single-turn stat bonus granted by item procs; the
// scheduler clears all transient buffs at the end of every tick.
type TransientBuff struct {
	DamageBonus  int    `json:"damage_bonus"`
	DefenseBonus int    `json:"defense_bonus"`
	Source       string `json:"source"`
}

// BattleUnit is one combatant. Instances are built from templates at
// battle start, owned exclusively by their BattleState, and discarded
// when the battle ends.
type BattleUnit struct {
	ID         string          `json:"id"`
	TemplateID string          `json:"template_id"`
	Name       string          `json:"name"`
	Faction    Faction         `json:"faction"`
	Pos        Position        `json:"pos"`
	Stats      Stats           `json:"stats"`
	Range      int             `json:"range"`
	Items      []string        `json:"items"`
	Abilities  []Ability       `json:"abilities"`
	Statuses   []StatusEffect  `json:"statuses"`
	Transient  []TransientBuff `json:"transient,omitempty"`
	// Metadata holds per-unit proc counters ("attacks since last proc",
	// one-shot revive flags, ...). It is the only state item hooks may
	// keep between triggers.
	Metadata map[string]int `json:"metadata,omitempty"`
	Alive    bool           `json:"alive"`
}

// HasStatus reports whether a status of the given type is active.
func (u *BattleUnit) HasStatus(t StatusType) bool {
	for i := range u.Statuses {
		if u.Statuses[i].Type == t {
			return true
		}
	}
	return false
}

// Counter returns the named metadata counter (0 when absent).
func (u *BattleUnit) Counter(key string) int {
	if u.Metadata == nil {
		return 0
	}
	return u.Metadata[key]
}

// SetCounter stores a metadata counter, allocating the map on first use.
func (u *BattleUnit) SetCounter(key string, v int) {
	if u.Metadata == nil {
		u.Metadata = make(map[string]int)
	}
	u.Metadata[key] = v
}
