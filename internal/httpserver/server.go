// internal/httpserver/server.go
//
// HTTP server wiring for the word search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Round endpoints (optional auth): mounted under /game (routes_game.go, routes_ws.go).
//   - Daily puzzle endpoints (optional auth): mounted under /daily (routes_daily.go).
//   - Auth + profile/stat endpoints: /auth/*, /stats/me (routes_auth.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Streaming routes (SSE, WebSocket) are kept out of the timeout middleware.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/config"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/events"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/store"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/words"
)

// Server bundles router, round store, DB-backed repositories and the event hub.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	db      *sql.DB
	users   *auth.Users
	authMW  auth.Middleware
	daily   *daily.Store
	events  *events.Broadcaster
	dailies *dailyServer
	ttl     time.Duration // idle time before a round is swept

	pointer   func(http.Handler) http.Handler // HTTP pointer routes
	wsPointer *peerLimiter                    // WebSocket pointer frames

	stop      chan struct{}
	closeOnce sync.Once
}

// New constructs a Server, installs middleware, and registers routes.
// It also starts the idle-round sweeper; call Close to stop it.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	users := auth.NewUsers(db)
	ttl := cfg.RoundTTL
	if ttl <= 0 {
		ttl = DefaultRoundTTL
	}
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       cfg,
		store:     st,
		db:        db,
		users:     users,
		authMW:    auth.Middleware{Config: cfg.Auth, Users: users},
		daily:     daily.NewStore(db),
		events:    events.NewBroadcaster(),
		ttl:       ttl,
		pointer:   pointerLimiter(pointerRate, time.Second),
		wsPointer: newPeerLimiter(rate.Limit(pointerRate), pointerRate),
		stop:      make(chan struct{}),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)   // add X-Request-ID
	s.r.Use(chimw.RealIP)      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)         // zerolog access log
	s.r.Use(chimw.Recoverer)   // recover from panics
	s.r.Use(jsonContentType)   // default JSON responses
	s.r.Use(s.corsFromConfig)  // credentials-friendly CORS
	s.r.Use(s.authMW.Optional) // guests can play; user attached when present

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordsearch-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/pointer", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": words.Count()})
	})

	// Streams: no handler timeout.
	s.r.Get("/game/{id}/events", s.handleEvents)
	s.r.Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		s.mountGame(r)
		s.mountDaily(r)
		s.mountAuth(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not_found", http.StatusNotFound)
	})

	go s.sweepLoop(sweepEvery)
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request through zerolog.
func accessLog(next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		lvl := zerolog.InfoLevel
		if status >= 500 {
			lvl = zerolog.ErrorLevel
		}
		hlog.FromRequest(r).WithLevel(lvl).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(next)
	return hlog.NewHandler(log.Logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := chimw.GetReqID(r.Context()); id != "" {
				l := zerolog.Ctx(r.Context())
				l.UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("req_id", id)
				})
			}
			h.ServeHTTP(w, r)
		}),
	)
}

// corsFromConfig enables credentialed CORS for a single origin.
func (s *Server) corsFromConfig(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, words.ErrNotEnough):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
