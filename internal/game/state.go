package game

import "math/rand"

// BattleState owns everything belonging to one simulation run: both
// rosters, the wave counters, the append-only event log and the seeded
// randomness every resolver draws from. A BattleState is never shared
// across battles.
type BattleState struct {
	Heroes     []*BattleUnit
	Enemies    []*BattleUnit
	Wave       int
	TotalWaves int
	Tick       int
	Events     []Event
	Seed       int64
	Rand       *rand.Rand
}

// NewBattleState builds a state seeded for reproducible rolls. The same
// seed and rosters always produce the same event log.
func NewBattleState(seed int64, totalWaves int) *BattleState {
	return &BattleState{
		TotalWaves: totalWaves,
		Events:     make([]Event, 0, 256),
		Seed:       seed,
		Rand:       rand.New(rand.NewSource(seed)),
	}
}

// Append adds an entry to the action log, stamping the current tick.
// Entries are never mutated after append.
func (s *BattleState) Append(e Event) {
	e.Tick = s.Tick
	s.Events = append(s.Events, e)
}

// Units returns all units in roster order, heroes first. Iteration order
// is fixed so targeting tie-breaks stay deterministic.
func (s *BattleState) Units() []*BattleUnit {
	out := make([]*BattleUnit, 0, len(s.Heroes)+len(s.Enemies))
	out = append(out, s.Heroes...)
	out = append(out, s.Enemies...)
	return out
}

// Living returns the living units of one faction, in roster order.
func (s *BattleState) Living(f Faction) []*BattleUnit {
	var roster []*BattleUnit
	if f == FactionHero {
		roster = s.Heroes
	} else {
		roster = s.Enemies
	}
	out := make([]*BattleUnit, 0, len(roster))
	for _, u := range roster {
		if u.Alive {
			out = append(out, u)
		}
	}
	return out
}

// Opponents returns the living units hostile to the given faction.
func (s *BattleState) Opponents(f Faction) []*BattleUnit {
	if f == FactionHero {
		return s.Living(FactionEnemy)
	}
	return s.Living(FactionHero)
}

// Allies returns the living units of the same faction.
func (s *BattleState) Allies(f Faction) []*BattleUnit {
	return s.Living(f)
}

// FindUnit looks a unit up by id across both rosters.
func (s *BattleState) FindUnit(id string) *BattleUnit {
	for _, u := range s.Units() {
		if u.ID == id {
			return u
		}
	}
	return nil
}
