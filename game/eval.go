package game

// Heuristic weighs how far a side has advanced against how many pieces it
// still has. The weights are empirical.
type Heuristic struct {
	HostileRowWeight    float64
	HostileCountWeight  float64
	FriendlyRowWeight   float64
	FriendlyCountWeight float64
}

func NewStandardHeuristic() Heuristic {
	return Heuristic{
		HostileRowWeight:    0.4,
		HostileCountWeight:  0.6,
		FriendlyRowWeight:   0.6,
		FriendlyCountWeight: 0.4,
	}
}

// EvaluateAdvancement scores b with the standard heuristic.
func EvaluateAdvancement(b *Board, maxTurn bool) float64 {
	return NewStandardHeuristic().Evaluate(b, maxTurn)
}

// Evaluate scores Hostile when maxTurn is false: the lowest row any Hostile
// piece has reached and the Hostile piece count. When maxTurn is true it
// scores Friendly: the highest row reached and the Friendly piece count.
func (h Heuristic) Evaluate(b *Board, maxTurn bool) float64 {
	if !maxTurn {
		pieces := b.Pieces(Hostile)
		minRow := b.rows
		for _, p := range pieces {
			if p.Row < minRow {
				minRow = p.Row
			}
		}
		return float64(minRow)*h.HostileRowWeight + float64(len(pieces))*h.HostileCountWeight
	}

	pieces := b.Pieces(Friendly)
	maxRow := 0
	for _, p := range pieces {
		if p.Row > maxRow {
			maxRow = p.Row
		}
	}
	return float64(maxRow)*h.FriendlyRowWeight + float64(len(pieces))*h.FriendlyCountWeight
}
