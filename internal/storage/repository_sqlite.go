package storage

import (
	"errors"

	"github.com/Orloaft/gridder-sub002/internal/game"

	"gorm.io/gorm"
)

var ErrBattleNotFound = errors.New("battle not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveBattle(rec *game.BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByPublicID(publicID string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	err := r.db.Where("public_id = ?", publicID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.BattleRecord, error) {
	var recs []game.BattleRecord
	// event logs can be large; lists return metadata only
	err := r.db.
		Select("id", "created_at", "updated_at", "public_id", "seed", "waves", "winner", "ticks", "event_count", "hero_list").
		Order("id desc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(heroes []game.HeroRef, won bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, h := range heroes {
			var profile game.HeroProfile
			err := tx.Where("template_id = ?", h.TemplateID).First(&profile).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = game.HeroProfile{TemplateID: h.TemplateID, Name: h.Name}
			} else if err != nil {
				return err
			}
			profile.BattlesFought++
			if won {
				profile.Wins++
			}
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetTopHeroes(limit int) ([]game.HeroProfile, error) {
	var profiles []game.HeroProfile
	err := r.db.Order("wins desc, battles_fought desc").Limit(limit).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
