package storage

import "github.com/Orloaft/gridder-sub002/internal/game"

type Repository interface {
	// SaveBattle persists a finished simulation record.
	SaveBattle(rec *game.BattleRecord) error
	// GetBattleByPublicID returns a battle record including its event log.
	GetBattleByPublicID(publicID string) (*game.BattleRecord, error)
	// ListRecentBattles returns the newest records, event logs omitted.
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	// UpdateStatsOnBattleEnd bumps per-hero aggregates after a battle.
	UpdateStatsOnBattleEnd(heroes []game.HeroRef, won bool) error
	// GetTopHeroes returns hero profiles ordered by wins.
	GetTopHeroes(limit int) ([]game.HeroProfile, error)
}
