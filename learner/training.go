package learner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/meta"
)

type TrainOption func(t *trainer)

type trainer struct {
	options       []Option
	maxMoves      int
	progressEvery int
	seed          uint64
	seeded        bool
	recorder      func(metrics.EpisodeRecord)
}

// WithLearnerOptions applies options to both learners.
func WithLearnerOptions(options ...Option) TrainOption {
	return func(t *trainer) {
		t.options = append(t.options, options...)
	}
}

// WithMaxMoves ends an episode as a stalemate after this many moves.
func WithMaxMoves(moves int) TrainOption {
	return func(t *trainer) {
		if moves > 0 {
			t.maxMoves = moves
		}
	}
}

func WithProgressEvery(episodes int) TrainOption {
	return func(t *trainer) {
		if episodes > 0 {
			t.progressEvery = episodes
		}
	}
}

// WithTrainingSeed seeds the two learners with seed and seed+1.
func WithTrainingSeed(seed uint64) TrainOption {
	return func(t *trainer) {
		t.seed = seed
		t.seeded = true
	}
}

// WithRecorder receives a record after every episode.
func WithRecorder(recorder func(metrics.EpisodeRecord)) TrainOption {
	return func(t *trainer) {
		t.recorder = recorder
	}
}

type TrainingResult struct {
	Episodes   int
	Wins       [2]int // Episodes won, [X, O]
	Stalemates int
	Selected   game.Side
}

// Train self-plays episodes from copies of initial between a Hostile
// learner, which moves first, and a Friendly learner. An episode is won by
// the side with the higher cumulative reward, Hostile on a tie. The learner
// with more wins is returned, Hostile on a tie.
func Train(initial *game.Board, episodes int, options ...TrainOption) (*Learner, TrainingResult, error) {
	if episodes <= 0 {
		return nil, TrainingResult{}, fmt.Errorf("training needs at least one episode, got %d", episodes)
	}
	t := &trainer{
		maxMoves:      meta.MAX_TURNS,
		progressEvery: meta.PROGRESS_EVERY,
	}
	for _, option := range options {
		option(t)
	}

	learners := [2]*Learner{
		New(game.Hostile, t.learnerOptions(0)...),
		New(game.Friendly, t.learnerOptions(1)...),
	}

	log.Info().Msgf("training %d iterations...", episodes)
	result := TrainingResult{Episodes: episodes}
	for i := 1; i <= episodes; i++ {
		b := initial.Copy()
		record, err := t.episode(b, learners)
		if err != nil {
			return nil, result, fmt.Errorf("episode %d: %w", i, err)
		}
		record.Episode = i

		result.Wins[record.Winner.RewardIndex()]++
		if record.Stalemate {
			result.Stalemates++
		}
		if t.recorder != nil {
			t.recorder(record)
		}

		if i%t.progressEvery == 0 {
			log.Debug().Msgf("episode %d final board:\n%s", i, b)
			log.Info().Msgf("%d/%d done.", i, episodes)
		}
	}

	selected := learners[0]
	if result.Wins[1] > result.Wins[0] {
		selected = learners[1]
	}
	result.Selected = selected.Side()
	log.Info().Msgf("selected player: %v (wins X=%d O=%d, stalemates %d)",
		selected.Side(), result.Wins[0], result.Wins[1], result.Stalemates)
	return selected, result, nil
}

func (t *trainer) learnerOptions(offset uint64) []Option {
	options := append([]Option{}, t.options...)
	if t.seeded {
		options = append(options, WithSeed(t.seed+offset))
	}
	return options
}

// episode alternates the learners on b until one finishes the game, a side
// cannot move, or the move cap is hit.
func (t *trainer) episode(b *game.Board, learners [2]*Learner) (metrics.EpisodeRecord, error) {
	start := time.Now()
	moves := 0
	stalemate := false

	for turn := 0; ; turn++ {
		if moves >= t.maxMoves {
			stalemate = true
			break
		}
		outcome, err := learners[turn%2].CompleteMove(b)
		if err != nil {
			return metrics.EpisodeRecord{}, err
		}
		if outcome == Stalemate {
			stalemate = true
			break
		}
		moves++
		if outcome == Finished {
			break
		}
	}

	rewards := b.Rewards()
	winner := game.Hostile
	if rewards[1] > rewards[0] {
		winner = game.Friendly
	}
	return metrics.EpisodeRecord{
		Moves:     moves,
		Rewards:   rewards,
		Winner:    winner,
		Stalemate: stalemate,
		Duration:  time.Since(start),
	}, nil
}
