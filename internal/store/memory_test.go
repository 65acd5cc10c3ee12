package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New([]string{"SOL", "LUNA"}, 1)

	require.NoError(t, s.Save(ctx, g))
	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = s.Get(ctx, "nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Delete(ctx, g.ID))
	_, err = s.Get(ctx, g.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, s.Delete(ctx, g.ID))
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := game.New([]string{"SOL"}, 1)
	b := game.New([]string{"MAR"}, 2)
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*game.Game{a, b}, got)

	require.NoError(t, s.Delete(ctx, a.ID))
	got, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*game.Game{b}, got)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	ids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			g := game.New([]string{"SOL"}, seed)
			_ = s.Save(ctx, g)
			ids <- g.ID
		}(uint64(i))
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		_, err := s.Get(ctx, id)
		assert.NoError(t, err)
	}
}
