package metrics

import (
	"sync/atomic"
	"time"

	"leaper/game"
)

type SearchMetric struct {
	Algorithm  string
	Depth      int
	Goroutines int
	Duration   time.Duration
	Nodes      int // Positions visited
	Prunes     int // Alpha-beta cutoffs
}

type MoveMetric struct {
	Step int
	Side game.Side
	Move game.Move
	SearchMetric
}

type GameMetric struct {
	StartingSide game.Side
	Winner       string // "O", "X", or "" without a winner
	Stalemate    bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

// EpisodeRecord summarizes one self-play training episode.
type EpisodeRecord struct {
	Episode   int
	Moves     int
	Rewards   [2]int // [X, O]
	Winner    game.Side
	Stalemate bool
	Duration  time.Duration
}

type Collector interface {
	Start(algorithm string, depth, goroutines int)
	AddNode()
	AddPrune()
	Complete() SearchMetric
}

type collector struct {
	algorithm  string
	depth      int
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	prunes     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, depth, goroutines int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.depth = depth
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.prunes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:  m.algorithm,
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Prunes:     int(m.prunes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth, goroutines int) {}
func (m *dummyCollector) AddNode()                                      {}
func (m *dummyCollector) AddPrune()                                     {}
func (m *dummyCollector) Complete() SearchMetric                        { return SearchMetric{} }
