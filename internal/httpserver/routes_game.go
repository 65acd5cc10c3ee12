// internal/httpserver/routes_game.go
//
// Round endpoints:
//   - POST /game/new           → generate a round (random or supplied words, optional seed)
//   - GET  /game/{id}          → current view of a round
//   - POST /game/{id}/restart  → new board for the same round, progress dropped
//   - POST /game/{id}/pointer  → one pointer event (down / move / up)
//   - POST /game/{id}/select   → a whole drag in one request (from → to)
//   - GET  /game/{id}/events   → SSE stream of word_found / victory / restart
//
// Rounds live in the in-memory store; a summary row per round is kept in
// the rounds table for history and stats (best effort, never fatal).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/events"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/words"
)

var errBadPointer = errors.New("bad_pointer_type")

// mountGame registers the /game routes that run under the request timeout.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Get("/game/{id}", s.handleGetGame)
	r.Post("/game/{id}/restart", s.handleRestart)
	r.With(s.pointer).Post("/game/{id}/pointer", s.handlePointer)
	r.With(s.pointer).Post("/game/{id}/select", s.handleSelect)
}

// newGameReq is the payload for POST /game/new and /game/{id}/restart.
type newGameReq struct {
	Words []string `json:"words"` // optional; random words otherwise
	Seed  *uint64  `json:"seed"`  // optional; random seed otherwise
}

// roundWords resolves the words and seed for a new board.
func roundWords(req newGameReq) ([]string, uint64, error) {
	seed := game.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	if len(req.Words) > 0 {
		list, err := words.Take(req.Words, words.PerRound)
		return list, seed, err
	}
	list, err := words.Pick(game.RNG(^seed), words.PerRound)
	return list, seed, err
}

// handleNewGame creates a round, stores it, and records its owner row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "bad_json", http.StatusBadRequest)
			return
		}
	}
	list, seed, err := roundWords(req)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	g := game.New(list, seed)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save round")
		jsonError(w, "save_failed", http.StatusInternalServerError)
		return
	}
	if len(g.Skipped) > 0 {
		log.Info().Str("round", g.ID).Strs("skipped", g.Skipped).Msg("words could not be placed")
	}
	s.insertRound(w, r, g)
	writeJSON(w, http.StatusCreated, s.view(g))
}

// handleGetGame returns the current view of a round.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.view(g))
}

// handleRestart regenerates the board. Daily rounds are rebuilt from the
// list and seed they were first generated with.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}

	var list []string
	var seed uint64
	if g.Daily != "" {
		list, seed = g.Source, g.Seed
	} else {
		var req newGameReq
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				jsonError(w, "bad_json", http.StatusBadRequest)
				return
			}
		}
		var err error
		if list, seed, err = roundWords(req); err != nil {
			jsonError(w, err.Error(), statusFor(err))
			return
		}
	}

	g.Restart(list, seed)
	s.exec(r.Context(), `UPDATE rounds SET seed=?, words=?, skipped=?, found=0, status='playing', started_at=?, finished_at=NULL WHERE id=?`,
		strconv.FormatUint(seed, 10), len(g.Words), len(g.Skipped), now(), g.ID)
	s.events.Publish(g.ID, events.Event{Type: "restart"})
	writeJSON(w, http.StatusOK, s.view(g))
}

// pointerReq is one pointer event; Type is "down", "move" or "up".
type pointerReq struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// pointerRes reports the displayed path and, after "up", any confirmed word.
type pointerRes struct {
	Path      grid.Path  `json:"path"`
	Changed   bool       `json:"changed"`
	Word      string     `json:"word,omitempty"`
	Found     int        `json:"found"`
	Total     int        `json:"total"`
	Remaining []string   `json:"remaining"`
	State     game.State `json:"state"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}
	var req pointerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	res, err := s.applyPointer(r.Context(), g, req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// selectReq is a complete drag.
type selectReq struct {
	From grid.Coord `json:"from"`
	To   grid.Coord `json:"to"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	path, ev, found := g.Select(req.From, req.To)
	res := pointerRes{Path: path}
	if found {
		res.Word, res.Changed = ev.Word, true
		s.onWordFound(r.Context(), g, ev)
	}
	progress(g, &res)
	writeJSON(w, http.StatusOK, res)
}

// applyPointer feeds one event to the round. Shared by HTTP and WebSocket.
func (s *Server) applyPointer(ctx context.Context, g *game.Game, req pointerReq) (pointerRes, error) {
	var res pointerRes
	switch req.Type {
	case "down":
		res.Path = g.PointerDown(req.Row, req.Col)
		res.Changed = true
	case "move":
		res.Path, res.Changed = g.PointerMove(req.Row, req.Col)
	case "up":
		res.Path = grid.Path{}
		if ev, ok := g.PointerUp(); ok {
			res.Word = ev.Word
			res.Changed = true
			s.onWordFound(ctx, g, ev)
		}
	default:
		return res, errBadPointer
	}
	progress(g, &res)
	return res, nil
}

// progress fills the round totals of a pointer response.
func progress(g *game.Game, res *pointerRes) {
	v := g.Snapshot(false)
	res.Found, res.Total, res.State = len(v.Found), len(v.Words), v.State
	res.Remaining = g.Remaining()
}

// onWordFound broadcasts the find and, on victory, records results.
func (s *Server) onWordFound(ctx context.Context, g *game.Game, ev game.Event) {
	s.events.Publish(g.ID, events.Event{Type: "word_found", Data: ev})
	s.exec(ctx, `UPDATE rounds SET found=? WHERE id=?`, ev.Found, g.ID)
	if !ev.Won {
		return
	}

	elapsed := g.Elapsed()
	s.events.Publish(g.ID, events.Event{Type: "victory", Data: map[string]any{
		"elapsedMs": elapsed.Milliseconds(),
		"total":     ev.Total,
	}})
	s.exec(ctx, `UPDATE rounds SET status='won', finished_at=? WHERE id=?`, now(), g.ID)
	log.Info().Str("round", g.ID).Dur("elapsed", elapsed).Msg("round won")

	me := auth.CurrentUser(ctx)
	if me == nil {
		return
	}
	if err := s.users.RecordRound(ctx, me.ID, true, ev.Total); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("record round")
	}
	if g.Daily != "" {
		_ = s.recordDaily(ctx, me.ID, g)
	}
}

// handleEvents streams a round's events over SSE.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}
	hello := events.Event{Type: "hello", Data: s.view(g)}
	s.events.ServeSSE(w, r, g.ID, &hello)
}

// ------------------------------ helpers ------------------------------------

// loadRound fetches the {id} round, writing a 404 when it is missing.
func (s *Server) loadRound(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "not_found", statusFor(err))
		return nil, false
	}
	return g, true
}

func (s *Server) view(g *game.Game) game.View {
	return g.Snapshot(s.cfg.DebugPlacements)
}

// insertRound records the round's owner (user or anonymous cookie).
func (s *Server) insertRound(w http.ResponseWriter, r *http.Request, g *game.Game) {
	var userID, anonID any
	if me := auth.CurrentUser(r.Context()); me != nil {
		userID = me.ID
	} else {
		anonID = s.ensureAnonID(w, r)
	}
	var dailyKey any
	if g.Daily != "" {
		dailyKey = g.Daily
	}
	s.exec(r.Context(), `INSERT INTO rounds (id, user_id, anonymous_id, seed, daily, words, skipped, started_at)
	                     VALUES (?,?,?,?,?,?,?,?)`,
		g.ID, userID, anonID, strconv.FormatUint(g.Seed, 10), dailyKey, len(g.Words), len(g.Skipped), now())
}

// exec runs a best-effort statement, logging failures.
func (s *Server) exec(ctx context.Context, query string, args ...any) {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Warn().Err(err).Msg("rounds bookkeeping")
	}
}

const anonCookieName = "wordsearch_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := auth.GenID()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	// later lookups in this request see the same ID
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
