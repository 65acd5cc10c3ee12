// internal/game/types.go
//
// Core type definitions for a word search round.
// Defines:
//   - State: coarse round status (playing/won).
//   - Game:  one generated board, its words, and the player's progress.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

// State is the coarse status of a round.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// Game holds the state of a single round.
//
// The grid generator and evaluator are single-threaded; mu serialises
// the pointer events that arrive from concurrent HTTP handlers.
type Game struct {
	ID         string           // Unique round identifier (random hex string).
	Seed       uint64           // Seed the board was generated from.
	Daily      string           // Date key for daily rounds, empty otherwise.
	Source     []string         // Word list the board was generated from.
	Words      []string         // Words the player must find (all placed).
	Skipped    []string         // Words that could not be placed on the board.
	Placed     []grid.Placement // Where each word was hidden.
	Board      grid.Grid        // Current board, including found flags.
	Found      map[string]bool  // Words confirmed so far.
	FoundOrder []string         // Found words in the order they were confirmed.
	Selection  Selection        // Current drag, if any.
	StartedAt  time.Time
	FinishedAt time.Time // Zero until the round is won.

	mu         sync.Mutex
	lastActive time.Time
}

// Event describes what a pointer-up produced, for broadcasting.
type Event struct {
	Word  string    `json:"word"`
	Path  grid.Path `json:"path"`
	Color string    `json:"color"`
	Found int       `json:"found"`
	Total int       `json:"total"`
	Won   bool      `json:"won"`
}
