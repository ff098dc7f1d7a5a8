package game

// EventKind tags one entry of the battle action log. The set is closed:
// renderers switch on it exhaustively and unknown kinds are a bug.
type EventKind string

const (
	EventSpawn         EventKind = "spawn"
	EventMove          EventKind = "move"
	EventAttack        EventKind = "attack"
	EventDamage        EventKind = "damage"
	EventHeal          EventKind = "heal"
	EventDeath         EventKind = "death"
	EventAbilityUsed   EventKind = "ability_used"
	EventStatusApplied EventKind = "status_applied"
	EventStatusExpired EventKind = "status_expired"
	EventCritical      EventKind = "critical"
	EventEvaded        EventKind = "evaded"
	EventWaveComplete  EventKind = "wave_complete"
	EventBattleEnd     EventKind = "battle_end"
	EventWarning       EventKind = "warning"
)

// Event is one entry of the append-only action log. Entries carry plain
// values only (no live object references) so a stored log replays
// independently of the simulator. Only the fields relevant to the kind
// are set; the rest stay at their zero value and are omitted from JSON.
type Event struct {
	Kind     EventKind  `json:"kind"`
	Tick     int        `json:"tick"`
	UnitID   string     `json:"unit_id,omitempty"`
	TargetID string     `json:"target_id,omitempty"`
	Amount   int        `json:"amount,omitempty"`
	From     *Position  `json:"from,omitempty"`
	To       *Position  `json:"to,omitempty"`
	Status   StatusType `json:"status,omitempty"`
	Ability  string     `json:"ability,omitempty"`
	Source   string     `json:"source,omitempty"`
	Wave     int        `json:"wave,omitempty"`
	Winner   Faction    `json:"winner,omitempty"`
	Message  string     `json:"message,omitempty"`
}
