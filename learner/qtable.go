package learner

import "leaper/game"

type key struct {
	state  game.Snapshot
	action game.Move
}

// QTable maps (state, action) pairs to value estimates. Unseen pairs start
// at an optimistic initial value so untried actions get explored.
type QTable struct {
	initial float64
	values  map[key]float64
}

func NewQTable(initial float64) *QTable {
	return &QTable{
		initial: initial,
		values:  make(map[key]float64),
	}
}

// Get returns the value of (state, action), inserting the initial value on
// first access.
func (t *QTable) Get(state game.Snapshot, action game.Move) float64 {
	k := key{state: state, action: action}
	v, ok := t.values[k]
	if !ok {
		t.values[k] = t.initial
		return t.initial
	}
	return v
}

// Lookup returns the stored value without inserting.
func (t *QTable) Lookup(state game.Snapshot, action game.Move) (float64, bool) {
	v, ok := t.values[key{state: state, action: action}]
	return v, ok
}

func (t *QTable) Set(state game.Snapshot, action game.Move, value float64) {
	t.values[key{state: state, action: action}] = value
}

func (t *QTable) Len() int {
	return len(t.values)
}
