// internal/httpserver/routes_ws.go
//
// GET /game/{id}/ws upgrades to a WebSocket carrying the same pointer
// messages as POST /game/{id}/pointer. The connection also receives the
// round's broadcast events, so one socket is enough for a client.
//
// Inbound:  {"type":"down|move|up","row":R,"col":C}
// Outbound: {"type":"pointer","data":{...pointerRes}} replies, plus
//           {"type":"hello|word_found|victory|restart","data":...} events.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/events"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxMessage = 512
)

// checkOrigin accepts same-host requests, requests without an Origin
// header, and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// handleWS runs one WebSocket session for a round.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadRound(w, r)
	if !ok {
		return
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("round", g.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	sub := s.events.Register(g.ID)
	replies := make(chan []byte, 16)
	done := make(chan struct{})
	defer close(done)

	hello, _ := json.Marshal(events.Event{Type: "hello", Data: s.view(g)})
	replies <- hello

	// Writer: the only goroutine that writes to conn.
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer func() {
			ticker.Stop()
			s.events.Unregister(sub)
			conn.Close()
		}()
		for {
			var msg []byte
			select {
			case <-done:
				return
			case m, ok := <-sub.Messages():
				if !ok {
					return
				}
				msg = m
			case msg = <-replies:
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Reader: pointer events in, replies out.
	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		var req pointerReq
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("round", g.ID).Msg("websocket closed")
			}
			return
		}
		if !s.wsPointer.allow(r.RemoteAddr) {
			continue
		}
		var out events.Event
		if res, err := s.applyPointer(r.Context(), g, req); err != nil {
			out = events.Event{Type: "error", Data: err.Error()}
		} else {
			out = events.Event{Type: "pointer", Data: res}
		}
		b, err := json.Marshal(out)
		if err != nil {
			continue
		}
		select {
		case replies <- b:
		case <-time.After(wsWriteWait):
			return
		}
	}
}
