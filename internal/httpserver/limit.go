package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/httprate"
	"golang.org/x/time/rate"
)

// pointerRate is the pointer events per second allowed per client IP.
const pointerRate = 120

// pointerLimiter caps HTTP pointer traffic per client IP. Connections from
// different ports of one host share a bucket.
func pointerLimiter(n int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(n, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			jsonError(w, "too_many_requests", http.StatusTooManyRequests)
		}),
	)
}

// peerLimiter applies the same cap to frames arriving on WebSockets,
// which never pass through HTTP middleware after the upgrade.
type peerLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	peers map[string]*peer // keyed by host, port stripped
}

type peer struct {
	lim  *rate.Limiter
	seen time.Time
}

func newPeerLimiter(limit rate.Limit, burst int) *peerLimiter {
	return &peerLimiter{limit: limit, burst: burst, peers: make(map[string]*peer)}
}

// allow spends one token for the host behind remoteAddr.
func (l *peerLimiter) allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.peers[host]
	if !ok {
		p = &peer{lim: rate.NewLimiter(l.limit, l.burst)}
		l.peers[host] = p
	}
	p.seen = time.Now()
	return p.lim.Allow()
}

// prune forgets hosts not seen since before and reports how many went.
func (l *peerLimiter) prune(before time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for host, p := range l.peers {
		if p.seen.Before(before) {
			delete(l.peers, host)
			n++
		}
	}
	return n
}
