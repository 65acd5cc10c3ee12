// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Puzzle" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new          → start today's round (creates or reuses a session)
//   - POST /daily/{id}/finish  → confirm a won daily round and record the result
//   - GET  /daily/leaderboard  → fastest 20 results for today (or a given date)
//
// Every player gets the same board for a date: the seed is derived from
// the date and DAILY_SALT, and the words are drawn with that seed.
// Signed-in players are recorded once per day (enforced by DB + session map).

package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	salt     string
	sessions map[sessionKey]string // round ID per player and date
	mu       sync.Mutex            // guards sessions
}

type sessionKey struct {
	player, date string
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		salt:     s.cfg.DailySalt,
		sessions: make(map[sessionKey]string),
	}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/{id}/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the date key and board seed for now.
func (d *dailyServer) today() (date string, seed uint64) {
	now := time.Now().UTC()
	return daily.DateKey(now), daily.Seed(now, d.salt)
}

// playerID returns the signed-in user ID, or the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := auth.CurrentUser(r.Context()); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// prune drops sessions for any date other than today and reports how many went.
func (d *dailyServer) prune(today string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for k := range d.sessions {
		if k.date != today {
			delete(d.sessions, k)
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Round  *game.View `json:"round,omitempty"`
}

// handleNew creates or reuses today's round for the caller.
// - Signed in with a DB row for today → Played=true, no round.
// - Otherwise reuse the session's round if still stored, else generate it.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid := d.playerID(w, r)
	date, seed := d.today()

	if me := auth.CurrentUser(r.Context()); me != nil {
		played, err := d.srv.daily.AlreadyPlayed(r.Context(), me.ID, date)
		if err != nil {
			log.Error().Err(err).Msg("daily already played")
			jsonError(w, "server_error", http.StatusInternalServerError)
			return
		}
		if played {
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
			return
		}
	}

	key := sessionKey{player: pid, date: date}
	d.mu.Lock()
	id, ok := d.sessions[key]
	d.mu.Unlock()
	if ok {
		if g, err := d.srv.store.Get(r.Context(), id); err == nil {
			v := d.srv.view(g)
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Round: &v})
			return
		}
	}

	list, err := words.Pick(game.RNG(^seed), words.PerRound)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	g := game.New(list, seed)
	g.Daily = date
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save daily round")
		jsonError(w, "save_failed", http.StatusInternalServerError)
		return
	}
	d.mu.Lock()
	d.sessions[key] = g.ID
	d.mu.Unlock()
	d.srv.insertRound(w, r, g)

	log.Info().Str("date", date).Str("round", g.ID).Msg("daily round started")
	v := d.srv.view(g)
	writeJSON(w, http.StatusCreated, dailyNewRes{Date: date, Round: &v})
}

// -----------------------------------------------------------------------------
// /daily/{id}/finish

// dailyFinishRes is returned by /daily/{id}/finish.
type dailyFinishRes struct {
	Date      string `json:"date"`
	Words     int    `json:"words"`
	ElapsedMs int64  `json:"elapsedMs"`
	Recorded  bool   `json:"recorded"`
}

// handleFinish confirms a won daily round. Recording needs a signed-in
// player; repeats are ignored by the store.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	g, ok := d.srv.loadRound(w, r)
	if !ok {
		return
	}
	if g.Daily == "" {
		jsonError(w, "not_daily", http.StatusBadRequest)
		return
	}
	if !g.Won() {
		jsonError(w, "not_finished", http.StatusConflict)
		return
	}

	res := dailyFinishRes{
		Date:      g.Daily,
		Words:     len(g.Snapshot(false).Words),
		ElapsedMs: g.Elapsed().Milliseconds(),
	}
	if me := auth.CurrentUser(r.Context()); me != nil {
		if err := d.srv.recordDaily(r.Context(), me.ID, g); err != nil {
			jsonError(w, "server_error", http.StatusInternalServerError)
			return
		}
		res.Recorded = true
	}
	writeJSON(w, http.StatusOK, res)
}

// recordDaily stores a won daily round for userID.
func (s *Server) recordDaily(ctx context.Context, userID string, g *game.Game) error {
	err := s.daily.InsertResult(ctx, daily.Result{
		UserID:    userID,
		Date:      g.Daily,
		Words:     len(g.Snapshot(false).Words),
		ElapsedMs: g.Elapsed().Milliseconds(),
	})
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("insert daily result")
	}
	return err
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		jsonError(w, "bad_date", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, min(limit, 100))
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		jsonError(w, "server_error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
