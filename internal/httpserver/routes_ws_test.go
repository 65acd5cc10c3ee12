package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialRound(t *testing.T, srv *httptest.Server, id string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, res, err
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocketPlaysWord(t *testing.T) {
	s := newTestServer(t, true)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	v := newRound(t, s)
	p := v.Placements[0]
	path := p.Path()
	end := path[len(path)-1]

	conn, _, err := dialRound(t, srv, v.ID, nil)
	require.NoError(t, err)

	hello := readFrame(t, conn)
	require.Equal(t, "hello", hello.Type)
	var hv roundView
	require.NoError(t, json.Unmarshal(hello.Data, &hv))
	assert.Equal(t, v.ID, hv.ID)

	require.NoError(t, conn.WriteJSON(pointerReq{Type: "down", Row: p.StartRow, Col: p.StartCol}))
	require.NoError(t, conn.WriteJSON(pointerReq{Type: "move", Row: end.Row, Col: end.Col}))
	require.NoError(t, conn.WriteJSON(pointerReq{Type: "up"}))

	var replies []pointerRes
	var found bool
	for len(replies) < 3 || !found {
		f := readFrame(t, conn)
		switch f.Type {
		case "pointer":
			var res pointerRes
			require.NoError(t, json.Unmarshal(f.Data, &res))
			replies = append(replies, res)
		case "word_found":
			assert.Contains(t, string(f.Data), p.Word)
			found = true
		default:
			t.Fatalf("unexpected frame %q", f.Type)
		}
	}
	assert.Len(t, replies[0].Path, 1)
	assert.Equal(t, path, replies[1].Path)
	assert.Equal(t, p.Word, replies[2].Word)
	assert.Equal(t, 1, replies[2].Found)

	require.NoError(t, conn.WriteJSON(pointerReq{Type: "hover"}))
	f := readFrame(t, conn)
	assert.Equal(t, "error", f.Type)
	assert.Contains(t, string(f.Data), errBadPointer.Error())
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s := newTestServer(t, false)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	v := newRound(t, s)

	_, res, err := dialRound(t, srv, v.ID, http.Header{"Origin": {"https://evil.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	conn, _, err := dialRound(t, srv, v.ID, http.Header{"Origin": {"http://localhost:5173"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", readFrame(t, conn).Type)

	_, res, err = dialRound(t, srv, "missing", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
