// Package position owns the authoritative mapping of units to grid
// cells. Moves are transactional: a begun move reserves its destination
// immediately, while the unit's committed position changes only on
// commit. The simulator computes logical moves far faster than any
// renderer plays them; the pending/committed split keeps collision
// checks correct while commits lag behind.
package position

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Orloaft/gridder-sub002/internal/game"
)

var (
	ErrCellOccupied       = errors.New("cell already occupied")
	ErrNoSuchUnit         = errors.New("no such unit")
	ErrAlreadyMoving      = errors.New("unit already has a pending move")
	ErrDestinationBlocked = errors.New("destination blocked")
	ErrUnknownMove        = errors.New("unknown move id")
)

// MoveStatus is the lifecycle state of one move transaction.
type MoveStatus string

const (
	MovePending    MoveStatus = "pending"
	MoveCommitted  MoveStatus = "committed"
	MoveRolledBack MoveStatus = "rolled_back"
)

// Move is one position transaction.
type Move struct {
	ID     string
	UnitID string
	From   game.Position
	To     game.Position
	Status MoveStatus
}

// EventType tags store notifications sent to subscribers.
type EventType string

const (
	EventUnitPlaced     EventType = "unit_placed"
	EventMoveStarted    EventType = "move_started"
	EventMoveCommitted  EventType = "move_committed"
	EventMoveRolledBack EventType = "move_rolled_back"
	EventUnitRemoved    EventType = "unit_removed"
	EventBatchUpdated   EventType = "batch_updated"
)

// Event is delivered to subscribers on every state change. Positions is
// a snapshot; handlers may keep it without racing the store.
type Event struct {
	Type      EventType
	UnitID    string
	MoveID    string
	Positions map[string]game.Position
}

// Subscriber receives store events. Handlers run synchronously on the
// mutating goroutine and must not call back into the store.
type Subscriber func(Event)

// Placement is one entry of an atomic batch reposition.
type Placement struct {
	UnitID string
	Pos    game.Position
}

// Store tracks committed unit positions and in-flight move
// transactions. Safe for concurrent use; the simulator itself is
// single-threaded but UI subscribers may read snapshots from other
// goroutines.
type Store struct {
	mu        sync.Mutex
	committed map[string]game.Position
	pending   map[string]*Move
	byUnit    map[string]string // unitID -> pending move id
	subs      map[int]Subscriber
	nextSub   int
}

// NewStore returns an empty position store.
func NewStore() *Store {
	return &Store{
		committed: make(map[string]game.Position),
		pending:   make(map[string]*Move),
		byUnit:    make(map[string]string),
		subs:      make(map[int]Subscriber),
	}
}

// Subscribe registers a handler and returns a token for Unsubscribe.
func (s *Store) Subscribe(fn Subscriber) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	s.subs[s.nextSub] = fn
	return s.nextSub
}

// Unsubscribe removes a previously registered handler.
func (s *Store) Unsubscribe(token int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, token)
}

// InitializeUnit places a unit on an unoccupied cell.
func (s *Store) InitializeUnit(id string, pos game.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blockedLocked(pos, "") {
		return ErrCellOccupied
	}
	s.committed[id] = pos
	s.notifyLocked(Event{Type: EventUnitPlaced, UnitID: id})
	return nil
}

// BeginMove opens a move transaction for a unit. The destination cell
// is considered occupied from this point on, even though the unit's
// committed position is unchanged until CommitMove.
func (s *Store) BeginMove(id string, to game.Position) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, ok := s.committed[id]
	if !ok {
		return "", ErrNoSuchUnit
	}
	if _, moving := s.byUnit[id]; moving {
		return "", ErrAlreadyMoving
	}
	if s.blockedLocked(to, id) {
		return "", ErrDestinationBlocked
	}
	m := &Move{ID: uuid.NewString(), UnitID: id, From: from, To: to, Status: MovePending}
	s.pending[m.ID] = m
	s.byUnit[id] = m.ID
	s.notifyLocked(Event{Type: EventMoveStarted, UnitID: id, MoveID: m.ID})
	return m.ID, nil
}

// CommitMove finalizes a pending move: the unit's committed position
// becomes the destination and the prior cell is freed.
func (s *Store) CommitMove(moveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.pending[moveID]
	if !ok {
		return ErrUnknownMove
	}
	m.Status = MoveCommitted
	s.committed[m.UnitID] = m.To
	delete(s.pending, moveID)
	delete(s.byUnit, m.UnitID)
	s.notifyLocked(Event{Type: EventMoveCommitted, UnitID: m.UnitID, MoveID: moveID})
	return nil
}

// RollbackMove discards a pending move; the unit stays at its origin
// and the reserved destination is released.
func (s *Store) RollbackMove(moveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.pending[moveID]
	if !ok {
		return ErrUnknownMove
	}
	m.Status = MoveRolledBack
	delete(s.pending, moveID)
	delete(s.byUnit, m.UnitID)
	s.notifyLocked(Event{Type: EventMoveRolledBack, UnitID: m.UnitID, MoveID: moveID})
	return nil
}

// RemoveUnit drops a unit and any pending move it owns. Removing an
// unknown unit is a no-op.
func (s *Store) RemoveUnit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if moveID, ok := s.byUnit[id]; ok {
		delete(s.pending, moveID)
		delete(s.byUnit, id)
	}
	if _, ok := s.committed[id]; !ok {
		return
	}
	delete(s.committed, id)
	s.notifyLocked(Event{Type: EventUnitRemoved, UnitID: id})
}

// BatchUpdate repositions or places several units atomically: if any
// placement collides (with existing occupancy or within the batch
// itself), nothing is applied. Used by wave transitions so a failed
// spawn never leaves a partially placed wave.
func (s *Store) BatchUpdate(placements []Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batchIDs := make(map[string]bool, len(placements))
	for _, p := range placements {
		batchIDs[p.UnitID] = true
	}
	taken := make(map[game.Position]bool, len(placements))
	for _, p := range placements {
		if taken[p.Pos] {
			return ErrCellOccupied
		}
		taken[p.Pos] = true
		// cells held by units outside the batch stay blocking
		for id, pos := range s.committed {
			if pos == p.Pos && !batchIDs[id] {
				return ErrCellOccupied
			}
		}
		for _, m := range s.pending {
			if m.To == p.Pos && !batchIDs[m.UnitID] {
				return ErrCellOccupied
			}
		}
	}
	for _, p := range placements {
		if moveID, ok := s.byUnit[p.UnitID]; ok {
			delete(s.pending, moveID)
			delete(s.byUnit, p.UnitID)
		}
		s.committed[p.UnitID] = p.Pos
	}
	s.notifyLocked(Event{Type: EventBatchUpdated})
	return nil
}

// PositionOf returns a unit's committed position.
func (s *Store) PositionOf(id string) (game.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.committed[id]
	return pos, ok
}

// LogicalPositionOf returns where the unit logically is for simulation
// purposes: the pending destination when a move is in flight, otherwise
// the committed cell.
func (s *Store) LogicalPositionOf(id string) (game.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if moveID, ok := s.byUnit[id]; ok {
		return s.pending[moveID].To, true
	}
	pos, ok := s.committed[id]
	return pos, ok
}

// Occupied reports whether a cell blocks movement: committed occupancy
// or any pending destination counts.
func (s *Store) Occupied(pos game.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockedLocked(pos, "")
}

// Snapshot returns a copy of all committed positions.
func (s *Store) Snapshot() map[string]game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() map[string]game.Position {
	out := make(map[string]game.Position, len(s.committed))
	for id, pos := range s.committed {
		out[id] = pos
	}
	return out
}

// blockedLocked treats a cell as occupied when any unit other than
// `except` is committed there, holds it as a move origin, or has a
// pending move targeting it.
func (s *Store) blockedLocked(pos game.Position, except string) bool {
	for id, p := range s.committed {
		if id != except && p == pos {
			return true
		}
	}
	for _, m := range s.pending {
		if m.UnitID != except && m.To == pos {
			return true
		}
	}
	return false
}

func (s *Store) notifyLocked(e Event) {
	if len(s.subs) == 0 {
		return
	}
	e.Positions = s.snapshotLocked()
	for _, fn := range s.subs {
		fn(e)
	}
}
