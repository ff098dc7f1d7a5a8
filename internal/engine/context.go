package engine

import (
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/position"
)

// Phase is the scheduler state machine.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseSimulating     Phase = "simulating"
	PhaseWaveComplete   Phase = "wave_complete"
	PhaseBattleComplete Phase = "battle_complete"
)

// battleContext bundles everything one simulation run works on. All
// resolvers hang off it so the seeded RNG, the position store and the
// item catalog are threaded through every roll and proc.
type battleContext struct {
	state     *game.BattleState
	positions *position.Store
	catalog   *items.Catalog
	board     Board
	phase     Phase
}

// Board bounds movement and spawn formations.
type Board struct {
	Width  int
	Height int
}

// Contains reports whether the cell is on the board.
func (b Board) Contains(p game.Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func newBattleContext(state *game.BattleState, catalog *items.Catalog, board Board) *battleContext {
	return &battleContext{
		state:     state,
		positions: position.NewStore(),
		catalog:   catalog,
		board:     board,
		phase:     PhaseIdle,
	}
}

// warn appends a warning event; inconsistent battle data skips the
// current action rather than aborting, so the battle always terminates
// with a definitive log.
func (bc *battleContext) warn(msg, unitID string) {
	bc.state.Append(game.Event{Kind: game.EventWarning, UnitID: unitID, Message: msg})
}
