package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/assets"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/sqlite"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, "2026-03-02", DateKey(time.Date(2026, 3, 1, 22, 0, 0, 0, loc)))
}

func TestSeedStablePerDay(t *testing.T) {
	morning := time.Date(2026, 5, 4, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(tomorrow, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "pepper"))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, sqlite.Migrate(db, assets.Migrations()))

	s := NewStore(db)
	played, err := s.AlreadyPlayed(ctx, "u1", "2026-05-04")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-05-04", Words: 12, ElapsedMs: 90000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-05-04", Words: 12, ElapsedMs: 45000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-05-04", Words: 12, ElapsedMs: 1}), "duplicate is ignored")
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-05-05", Words: 12, ElapsedMs: 10}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-05-04")
	require.NoError(t, err)
	assert.True(t, played)

	lb, err := s.Leaderboard(ctx, "2026-05-04", 0)
	require.NoError(t, err)
	require.Len(t, lb, 2)
	assert.Equal(t, "u2", lb[0].UserID)
	assert.Equal(t, int64(45000), lb[0].ElapsedMs)
	assert.Equal(t, "u1", lb[1].UserID)
	assert.Equal(t, int64(90000), lb[1].ElapsedMs)
}
