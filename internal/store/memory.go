// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Rounds live only as long as the process: an unfinished puzzle is not
// resumable after a restart.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
)

// ErrNotFound is returned when no round has the requested ID.
var ErrNotFound = errors.New("store: round not found")

// Store defines the persistence interface for rounds.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a round; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored round, in no particular order.
	List(ctx context.Context) ([]*game.Game, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// Delete removes a round by ID.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// List snapshots the current set of rounds.
func (m *memory) List(ctx context.Context) ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	return out, nil
}
