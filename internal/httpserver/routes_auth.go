// internal/httpserver/routes_auth.go
//
// Authentication and gated profile routes:
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me       (gated)
//   - GET  /stats/me      (gated)
//   - GET  /rounds/mine   (gated) recent rounds from the rounds table
//
// Signing up or logging in claims the caller's anonymous rounds.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuth registers authentication + gated routes.
func (s *Server) mountAuth(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.authMW.Required)
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, auth.CurrentUser(r.Context()))
		})
		r.Get("/stats/me", s.handleStats)
		r.Get("/rounds/mine", s.handleMyRounds)
	})
}

// handleSignup creates a user, sets the auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid_json", http.StatusBadRequest)
		return
	}
	u, err := s.users.Create(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			jsonError(w, "Username taken", http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimAnonRounds(s.ensureAnonID(w, r), u.ID)
	log.Info().Str("user", u.ID).Msg("signup")
	writeJSON(w, http.StatusCreated, u)
}

// handleLogin authenticates, sets the cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid_json", http.StatusBadRequest)
		return
	}
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		jsonError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimAnonRounds(s.ensureAnonID(w, r), u.ID)
	writeJSON(w, http.StatusOK, u)
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cfg.Auth.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, u *auth.User) bool {
	tok, exp, err := s.cfg.Auth.Sign(u.ID, u.Username)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		jsonError(w, "sign_failed", http.StatusInternalServerError)
		return false
	}
	s.cfg.Auth.SetCookie(w, tok, exp)
	return true
}

// handleStats returns the caller's counters, re-read from the DB.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := auth.CurrentUser(r.Context())
	u, err := s.users.ByID(r.Context(), me.ID)
	if err != nil {
		jsonError(w, "not_found", statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"wordsFound":  u.WordsFound,
	})
}

type roundRow struct {
	ID         string `json:"id"`
	Daily      string `json:"daily,omitempty"`
	Status     string `json:"status"`
	Words      int    `json:"words"`
	Found      int    `json:"found"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// handleMyRounds lists the caller's 50 most recent rounds.
func (s *Server) handleMyRounds(w http.ResponseWriter, r *http.Request) {
	me := auth.CurrentUser(r.Context())
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT id, COALESCE(daily,''), status, words, found, started_at, COALESCE(finished_at,'')
		 FROM rounds WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		log.Error().Err(err).Msg("list rounds")
		jsonError(w, "db_error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []roundRow{}
	for rows.Next() {
		var rr roundRow
		if err := rows.Scan(&rr.ID, &rr.Daily, &rr.Status, &rr.Words, &rr.Found, &rr.StartedAt, &rr.FinishedAt); err == nil {
			out = append(out, rr)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// claimAnonRounds transfers anonymous rounds to a user account after auth.
func (s *Server) claimAnonRounds(anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.Exec(`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon rounds")
	}
}
