// internal/config/config.go
//
// Environment-driven configuration.
// Load() reads a .env file when present (godotenv), then the process
// environment. Every setting has a development default.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
)

type Config struct {
	Port            string
	LogLevel        string
	LogPretty       bool
	DBPath          string
	ClientOrigin    string
	DailySalt       string
	DebugPlacements bool          // expose word placements in round views
	RoundTTL        time.Duration // idle time before a round is dropped from memory
	Production      bool
	Auth            auth.Config
}

// Load builds a Config from .env and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("read .env")
	}
	prod := os.Getenv("NODE_ENV") == "production"
	c := Config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       envBool("LOG_PRETTY", !prod),
		DBPath:          getEnv("DB_PATH", "data/wordsearch.db"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:       getEnv("DAILY_SALT", "local_dev_salt"),
		DebugPlacements: envBool("DEBUG_PLACEMENTS", false),
		RoundTTL:        time.Duration(envInt("ROUND_TTL_MINUTES", 360)) * time.Minute,
		Production:      prod,
		Auth: auth.Config{
			Secret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
			ExpiryDays: envInt("JWT_EXPIRES_DAYS", 14),
			CookieName: getEnv("COOKIE_NAME", "wordsearch_token"),
			Secure:     prod,
		},
	}
	if prod && c.Auth.Secret == "dev_secret_change_me" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	return c
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
