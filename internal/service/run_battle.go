package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Orloaft/gridder-sub002/internal/config"
	"github.com/Orloaft/gridder-sub002/internal/engine"
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/logging"
	"github.com/Orloaft/gridder-sub002/internal/pacing"
	"github.com/Orloaft/gridder-sub002/internal/storage"
)

var (
	ErrNoHeroes    = errors.New("at least one hero is required")
	ErrUnknownHero = errors.New("unknown hero id")
	ErrNoWavePlan  = errors.New("configuration has no waves")
)

// RunRequest selects the roster and parameters for one simulation.
type RunRequest struct {
	HeroIDs []string `json:"hero_ids"`
	// Seed makes the battle fully reproducible. When omitted the
	// service draws one and records it on the battle.
	Seed *int64 `json:"seed,omitempty"`
	// Waves limits how many waves of the configured plan to run
	// (0 = all).
	Waves int `json:"waves,omitempty"`
	// Pacing overrides the neutral difficulty modifiers.
	Pacing *pacing.Modifiers `json:"pacing,omitempty"`
}

// RunResult is the outcome returned to the API layer.
type RunResult struct {
	BattleID string       `json:"battle_id"`
	Seed     int64        `json:"seed"`
	Winner   game.Faction `json:"winner"`
	Waves    int          `json:"waves"`
	Ticks    int          `json:"ticks"`
	Events   []game.Event `json:"events"`
}

// Simulator runs battles against the configured roster, persists the
// records and deduplicates identical concurrent requests.
type Simulator struct {
	repo    storage.Repository
	cfg     *config.LoadedConfig
	catalog *items.Catalog
	flight  singleflight.Group
	now     func() time.Time
}

func NewSimulator(repo storage.Repository, cfg *config.LoadedConfig, catalog *items.Catalog) *Simulator {
	return &Simulator{repo: repo, cfg: cfg, catalog: catalog, now: time.Now}
}

// Run simulates a battle for the request. Explicitly seeded requests
// are deterministic, so concurrent identical ones collapse onto a
// single simulation via singleflight and share the stored record.
func (s *Simulator) Run(req RunRequest) (*RunResult, error) {
	if len(req.HeroIDs) == 0 {
		return nil, ErrNoHeroes
	}
	heroes := make([]game.UnitTemplate, 0, len(req.HeroIDs))
	for _, id := range req.HeroIDs {
		t, ok := s.cfg.HeroByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHero, id)
		}
		heroes = append(heroes, t)
	}

	waves := s.cfg.Waves
	if req.Waves > 0 && req.Waves < len(waves) {
		waves = waves[:req.Waves]
	}
	if len(waves) == 0 {
		return nil, ErrNoWavePlan
	}

	mods := pacing.Default()
	if req.Pacing != nil {
		mods = *req.Pacing
	}

	if req.Seed != nil {
		key := flightKey(*req.Seed, req.HeroIDs, len(waves), mods)
		v, err, _ := s.flight.Do(key, func() (interface{}, error) {
			return s.simulate(heroes, waves, *req.Seed, mods, req.HeroIDs)
		})
		if err != nil {
			return nil, err
		}
		return v.(*RunResult), nil
	}
	return s.simulate(heroes, waves, s.now().UnixNano(), mods, req.HeroIDs)
}

func (s *Simulator) simulate(heroes []game.UnitTemplate, waves []engine.WaveSpec, seed int64, mods pacing.Modifiers, heroIDs []string) (*RunResult, error) {
	res, err := engine.Simulate(engine.Config{
		Seed:    seed,
		Board:   s.cfg.Board,
		Heroes:  heroes,
		Waves:   waves,
		Pacing:  mods,
		Catalog: s.catalog,
	})
	if err != nil {
		return nil, err
	}

	logBytes, err := json.Marshal(res.State.Events)
	if err != nil {
		return nil, err
	}
	rec := &game.BattleRecord{
		PublicID:   uuid.NewString(),
		Seed:       seed,
		Waves:      len(waves),
		Winner:     winnerString(res.Winner),
		Ticks:      res.State.Tick,
		EventCount: len(res.State.Events),
		HeroList:   strings.Join(heroIDs, ","),
		EventLog:   logBytes,
	}
	if err := s.repo.SaveBattle(rec); err != nil {
		return nil, err
	}

	refs := make([]game.HeroRef, 0, len(heroes))
	for _, t := range heroes {
		refs = append(refs, game.HeroRef{TemplateID: t.ID, Name: t.Name})
	}
	if err := s.repo.UpdateStatsOnBattleEnd(refs, res.Winner == game.FactionHero); err != nil {
		// stats are best-effort; the battle record is already stored
		logging.Error("failed to update hero stats", err, logging.Fields{"battle_id": rec.PublicID})
	}

	logging.Info("battle simulated", logging.Fields{
		"battle_id": rec.PublicID,
		"seed":      seed,
		"winner":    rec.Winner,
		"ticks":     rec.Ticks,
		"events":    rec.EventCount,
	})
	return &RunResult{
		BattleID: rec.PublicID,
		Seed:     seed,
		Winner:   res.Winner,
		Waves:    len(waves),
		Ticks:    res.State.Tick,
		Events:   res.State.Events,
	}, nil
}

func winnerString(f game.Faction) string {
	if f == game.FactionHero {
		return game.BattleWinnerHeroes
	}
	return game.BattleWinnerEnemies
}

// flightKey must cover every input that changes the simulation
// outcome, or distinct requests would share one battle.
func flightKey(seed int64, heroIDs []string, waves int, mods pacing.Modifiers) string {
	statuses := make([]string, 0, len(mods.Statuses))
	for _, st := range mods.Statuses {
		statuses = append(statuses, string(st))
	}
	return fmt.Sprintf("%d|%s|%d|%g|%g|%g|%s",
		seed, strings.Join(heroIDs, ","), waves,
		mods.HPScale, mods.DamageScale, mods.SpeedScale,
		strings.Join(statuses, ","))
}
