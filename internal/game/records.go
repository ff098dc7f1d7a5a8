package game

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Battle status values persisted on BattleRecord.
const (
	BattleWinnerHeroes  = "heroes"
	BattleWinnerEnemies = "enemies"
)

// BattleRecord is the persisted outcome of one simulation run: the seed
// and roster that produced it plus the serialized event log, enough to
// replay the battle without re-simulating.
type BattleRecord struct {
	gorm.Model
	// PublicID is the UUID exposed over the API instead of the numeric
	// database key.
	PublicID   string `json:"public_id" gorm:"uniqueIndex"`
	Seed       int64  `json:"seed"`
	Waves      int    `json:"waves"`
	Winner     string `json:"winner"`
	Ticks      int    `json:"ticks"`
	EventCount int    `json:"event_count"`
	// HeroList is the comma-joined hero template ids, in roster order.
	HeroList string `json:"hero_list"`
	// EventLog stores the full action log as a JSON array. Intentionally
	// omitted from list responses (`json:"-"`); fetched per-battle.
	EventLog []byte `json:"-" gorm:"column:event_log;type:blob"`
}

// TableName keeps the persisted table name explicit.
func (BattleRecord) TableName() string { return "battle_records" }

// DecodeEvents unpacks the stored action log.
func (r *BattleRecord) DecodeEvents() ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(r.EventLog, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// HeroRef identifies a hero template for stat aggregation.
type HeroRef struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
}

// HeroProfile stores aggregate results per hero template across battles.
type HeroProfile struct {
	gorm.Model
	TemplateID    string `json:"template_id" gorm:"uniqueIndex"`
	Name          string `json:"name"`
	BattlesFought int    `json:"battles_fought"`
	Wins          int    `json:"wins"`
}

func (HeroProfile) TableName() string { return "hero_profiles" }
