package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
)

const (
	sweepEvery = 5 * time.Minute
	peerIdle   = 10 * time.Minute
	// DefaultRoundTTL applies when the config leaves RoundTTL unset.
	DefaultRoundTTL = 6 * time.Hour
)

// sweepLoop runs sweep until Close is called.
func (s *Server) sweepLoop(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-t.C:
			s.sweep(context.Background(), now)
		}
	}
}

// sweep drops rounds idle for longer than the TTL, daily sessions from
// earlier dates, and rate-limit state for hosts that went quiet.
// It returns the number of rounds removed.
func (s *Server) sweep(ctx context.Context, now time.Time) int {
	rounds, err := s.store.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("sweep: list rounds")
		return 0
	}
	removed := 0
	for _, g := range rounds {
		if now.Sub(g.IdleSince()) <= s.ttl {
			continue
		}
		if err := s.store.Delete(ctx, g.ID); err != nil {
			log.Warn().Err(err).Str("round", g.ID).Msg("sweep: delete round")
			continue
		}
		removed++
	}
	sessions := s.dailies.prune(daily.DateKey(now.UTC()))
	peers := s.wsPointer.prune(now.Add(-peerIdle))
	if removed+sessions+peers > 0 {
		log.Debug().Int("rounds", removed).Int("sessions", sessions).Int("peers", peers).Msg("sweep")
	}
	return removed
}

// Close stops the background sweeper. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}
