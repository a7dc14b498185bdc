package learner

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"leaper/game"
	"leaper/utils"
)

// Hyperparameters for Q-learning

const (
	DefaultInitialQ = 10.0 // Optimistic value of an unseen (state, action)
	DefaultEpsilon  = 0.1  // Chance of a random exploratory move
	DefaultAlpha    = 0.3  // Learning rate
	DefaultGamma    = 0.9  // Discount of future rewards
)

var ErrNoPreviousState = errors.New("no move has been made on the board")

// Outcome is the result of one CompleteMove.
type Outcome int

const (
	Continue  Outcome = iota
	Finished          // The learner's side finished the game
	Stalemate         // The learner's side had no legal move
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Finished:
		return "finished"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

type Option func(l *Learner)

// Learner is a tabular Q-learning player for one side.
type Learner struct {
	side    game.Side
	epsilon float64
	alpha   float64
	gamma   float64
	initial float64
	q       *QTable
	rng     *rand.Rand
}

func WithEpsilon(epsilon float64) Option {
	return func(l *Learner) {
		if epsilon >= 0 && epsilon <= 1 {
			l.epsilon = epsilon
		}
	}
}

func WithLearningRate(alpha float64) Option {
	return func(l *Learner) {
		if alpha > 0 && alpha <= 1 {
			l.alpha = alpha
		}
	}
}

func WithDiscount(gamma float64) Option {
	return func(l *Learner) {
		if gamma >= 0 && gamma <= 1 {
			l.gamma = gamma
		}
	}
}

func WithInitialValue(value float64) Option {
	return func(l *Learner) {
		l.initial = value
	}
}

func WithSeed(seed uint64) Option {
	return func(l *Learner) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

func New(side game.Side, options ...Option) *Learner {
	l := &Learner{ // Default values
		side:    side,
		epsilon: DefaultEpsilon,
		alpha:   DefaultAlpha,
		gamma:   DefaultGamma,
		initial: DefaultInitialQ,
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(l)
	}
	l.q = NewQTable(l.initial)
	return l
}

func (l *Learner) Side() game.Side { return l.side }
func (l *Learner) Table() *QTable  { return l.q }

// Q returns the value of taking action in state.
func (l *Learner) Q(state game.Snapshot, action game.Move) float64 {
	return l.q.Get(state, action)
}

// ChooseAction is epsilon-greedy: with probability epsilon a uniformly random
// action, otherwise BestAction. It returns false when actions is empty.
func (l *Learner) ChooseAction(state game.Snapshot, actions []game.Move) (game.Move, bool) {
	if len(actions) == 0 {
		return game.Move{}, false
	}
	if l.rng.Float64() < l.epsilon { // explore
		return actions[l.rng.Intn(len(actions))], true
	}
	return l.BestAction(state, actions)
}

// BestAction returns the action with the highest value, choosing uniformly
// among ties.
func (l *Learner) BestAction(state game.Snapshot, actions []game.Move) (game.Move, bool) {
	if len(actions) == 0 {
		return game.Move{}, false
	}
	qs := lo.Map(actions, func(a game.Move, _ int) float64 {
		return l.Q(state, a)
	})
	best := utils.MaxIndices(qs)
	if len(best) == 1 {
		return actions[best[0]], true
	}
	return actions[best[l.rng.Intn(len(best))]], true
}

// Learn updates the value of chosen in the state before the last move from
// the reward that move earned and the best value now reachable through
// actions (zero when there are none):
//
//	Q <- Q + alpha * (reward + gamma*maxQ' - Q)
func (l *Learner) Learn(b *game.Board, actions []game.Move, chosen game.Move) error {
	prevState, ok := b.PrevState()
	if !ok {
		return ErrNoPreviousState
	}
	reward := float64(b.LastReward(l.side))
	prev := l.Q(prevState, chosen)

	maxNext := 0.0
	if len(actions) > 0 {
		state := b.State()
		maxNext = lo.Max(lo.Map(actions, func(a game.Move, _ int) float64 {
			return l.Q(state, a)
		}))
	}

	l.q.Set(prevState, chosen, prev+l.alpha*((reward+l.gamma*maxNext)-prev))
	return nil
}

// CompleteMove chooses a move, plays it on b and learns from it.
func (l *Learner) CompleteMove(b *game.Board) (Outcome, error) {
	actions := b.AvailableMoves(l.side)
	chosen, ok := l.ChooseAction(b.State(), actions)
	if !ok {
		if b.GameFinish(l.side) {
			return Finished, nil
		}
		return Stalemate, nil
	}

	if err := b.MakeMove(l.side, chosen); err != nil {
		return Continue, err
	}
	if err := l.Learn(b, b.AvailableMoves(l.side), chosen); err != nil {
		return Continue, err
	}

	if b.GameFinish(l.side) {
		return Finished, nil
	}
	return Continue, nil
}
