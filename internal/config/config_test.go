package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "NODE_ENV", "JWT_EXPIRES_DAYS", "DEBUG_PLACEMENTS", "COOKIE_NAME", "ROUND_TTL_MINUTES"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 14, c.Auth.ExpiryDays)
	assert.Equal(t, "wordsearch_token", c.Auth.CookieName)
	assert.False(t, c.Production)
	assert.False(t, c.Auth.Secure)
	assert.False(t, c.DebugPlacements)
	assert.Equal(t, 6*time.Hour, c.RoundTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_EXPIRES_DAYS", "nope")
	t.Setenv("DEBUG_PLACEMENTS", "true")
	t.Setenv("ROUND_TTL_MINUTES", "30")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.True(t, c.Production)
	assert.True(t, c.Auth.Secure)
	assert.Equal(t, 14, c.Auth.ExpiryDays, "bad integer falls back")
	assert.True(t, c.DebugPlacements)
	assert.Equal(t, 30*time.Minute, c.RoundTTL)
}
