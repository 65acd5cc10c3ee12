package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestPointerLimiterSharesBucketAcrossPorts(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := pointerLimiter(2, time.Minute)(ok)

	codes := map[int]int{}
	for port := 1000; port < 1010; port++ {
		req := httptest.NewRequest(http.MethodPost, "/game/x/pointer", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.0.1:%d", port)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[rec.Code]++
		if rec.Code == http.StatusTooManyRequests {
			assert.JSONEq(t, `{"error":"too_many_requests"}`, rec.Body.String())
		}
	}
	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 8, codes[http.StatusTooManyRequests])

	req := httptest.NewRequest(http.MethodPost, "/game/x/pointer", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other hosts keep their own bucket")
}

func TestPeerLimiter(t *testing.T) {
	l := newPeerLimiter(rate.Every(time.Hour), 2)

	var allowed int
	for port := 1; port <= 5; port++ {
		if l.allow(fmt.Sprintf("10.0.0.1:%d", port)) {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed, "ports of one host share a bucket")
	assert.True(t, l.allow("[::1]:4000"))
	assert.True(t, l.allow("no-port"))

	assert.Zero(t, l.prune(time.Now().Add(-time.Minute)))
	assert.Equal(t, 3, l.prune(time.Now().Add(time.Minute)))
	assert.True(t, l.allow("10.0.0.1:6"), "forgotten hosts start with a full bucket")
}
