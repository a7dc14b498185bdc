// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by a parallel search.
const GO_ROUTINES = 8

// EPISODES defines the default number of Q-learning training episodes.
const EPISODES = 1000

// SEARCH_DEPTH defines the default depth of the search algorithms.
const SEARCH_DEPTH = 4

// CUTOFF_DEPTH defines the remaining depth at which the cutoff search evaluates.
const CUTOFF_DEPTH = 2

// MAX_TURNS caps the moves of one game or training episode.
const MAX_TURNS = 300

// PROGRESS_EVERY defines how often training logs its progress.
const PROGRESS_EVERY = 100

// COMPARISON_GAMES defines the games per agent in the strategy comparison.
const COMPARISON_GAMES = 20
