package engine

import (
	"errors"
	"fmt"

	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/pacing"
)

var (
	ErrNoHeroes     = errors.New("battle requires at least one hero")
	ErrNoWaves      = errors.New("battle requires at least one wave")
	ErrBadFormation = errors.New("formation does not cover all units")
)

// DefaultBoard is used when the caller does not size the grid.
var DefaultBoard = Board{Width: 10, Height: 6}

// Config is one simulation request. The same Config (seed included)
// always produces the same event log.
type Config struct {
	Seed   int64
	Board  Board
	Heroes []game.UnitTemplate
	// HeroFormation optionally overrides DefaultHeroFormation.
	HeroFormation []game.Position
	Waves         []WaveSpec
	Pacing        pacing.Modifiers
	Catalog       *items.Catalog
	// OnWaveTransition is an external notification (camera/scroll
	// effects), separate from the battle action log. May be nil.
	OnWaveTransition func(nextWave int)
}

// Result is a finished simulation: the winner and the state whose
// Events field is the complete, ordered action log.
type Result struct {
	Winner game.Faction
	State  *game.BattleState
}

// Simulate runs a full battle to completion synchronously and returns
// the ordered action log. It composes the position store, targeting,
// damage/ability resolution, status ticking, item procs and wave
// control; the log is the sole output consumed by renderers.
func Simulate(cfg Config) (*Result, error) {
	if len(cfg.Heroes) == 0 {
		return nil, ErrNoHeroes
	}
	if len(cfg.Waves) == 0 {
		return nil, ErrNoWaves
	}
	board := cfg.Board
	if board.Width == 0 || board.Height == 0 {
		board = DefaultBoard
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = items.DefaultCatalog()
	}

	state := game.NewBattleState(cfg.Seed, len(cfg.Waves))
	bc := newBattleContext(state, catalog, board)

	heroFormation := cfg.HeroFormation
	if heroFormation == nil {
		heroFormation = DefaultHeroFormation(board, len(cfg.Heroes))
	}
	if len(heroFormation) < len(cfg.Heroes) {
		return nil, ErrBadFormation
	}
	for _, spec := range cfg.Waves {
		if len(spec.Formation) < len(spec.Templates) {
			return nil, ErrBadFormation
		}
	}

	for i, t := range cfg.Heroes {
		u := game.NewBattleUnit(t, game.FactionHero, i+1)
		u.Pos = heroFormation[i]
		if err := bc.positions.InitializeUnit(u.ID, u.Pos); err != nil {
			return nil, fmt.Errorf("place hero %s: %w", u.ID, err)
		}
		state.Heroes = append(state.Heroes, u)
		pos := u.Pos
		state.Append(game.Event{Kind: game.EventSpawn, UnitID: u.ID, To: &pos, Wave: 1})
	}

	winner := game.FactionHero
	enemySeq := 0
	for w := 1; w <= len(cfg.Waves); w++ {
		state.Wave = w
		if err := bc.spawnWave(w, cfg.Waves[w-1], cfg.Pacing, &enemySeq); err != nil {
			return nil, fmt.Errorf("spawn wave %d: %w", w, err)
		}
		if bc.runWave() == game.FactionEnemy {
			winner = game.FactionEnemy
			break
		}
		if w < len(cfg.Waves) {
			// surviving heroes carry their HP into the next wave
			bc.phase = PhaseWaveComplete
			state.Append(game.Event{Kind: game.EventWaveComplete, Wave: w})
			if cfg.OnWaveTransition != nil {
				cfg.OnWaveTransition(w + 1)
			}
		}
	}

	bc.phase = PhaseBattleComplete
	state.Append(game.Event{Kind: game.EventBattleEnd, Winner: winner})
	return &Result{Winner: winner, State: state}, nil
}
