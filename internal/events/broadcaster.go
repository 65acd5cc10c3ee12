// internal/events/broadcaster.go
//
// Server-Sent Events fan-out, grouped by round.
// Each subscriber gets a small buffered channel; when it is full the
// message is dropped for that subscriber rather than blocking play.

package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	channelBuffer = 16
	heartbeat     = 30 * time.Second
)

// Event is a message pushed to a round's subscribers.
type Event struct {
	Type string `json:"type"` // word_found | victory | restart | hello
	Data any    `json:"data,omitempty"`
}

// Client is a single SSE connection.
type Client struct {
	ch      chan []byte
	roundID string
}

// Broadcaster manages SSE clients grouped by round.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*Client]struct{})}
}

// Register adds a client for a round and returns it.
func (b *Broadcaster) Register(roundID string) *Client {
	c := &Client{ch: make(chan []byte, channelBuffer), roundID: roundID}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()
	return c
}

// Unregister removes a client and closes its channel.
func (b *Broadcaster) Unregister(c *Client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.ch)
	}
	b.mu.Unlock()
}

// Publish sends ev to every client of a round.
func (b *Broadcaster) Publish(roundID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("encode event")
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.clients {
		if c.roundID != roundID {
			continue
		}
		select {
		case c.ch <- data:
		default:
			log.Debug().Str("round", roundID).Msg("dropping event for slow client")
		}
	}
}

// ClientCount returns the number of connected clients for a round.
func (b *Broadcaster) ClientCount(roundID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for c := range b.clients {
		if c.roundID == roundID {
			n++
		}
	}
	return n
}

// Messages exposes a client's channel, mainly for tests.
func (c *Client) Messages() <-chan []byte { return c.ch }

// ServeSSE streams a round's events until the request is cancelled.
// hello, if not nil, is sent first.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, roundID string, hello *Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming_unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.Register(roundID)
	defer b.Unregister(c)

	if hello != nil {
		if data, err := json.Marshal(hello); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
