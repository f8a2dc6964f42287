package stream

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/pcg128/pcg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func call(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestStreamRollMatchesGenerator(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()

	conn := dial(t, ts, "?seed=42&sequence=54")
	want := pcg.New(42, 54)

	resp := call(t, conn, Request{Op: OpRoll, Count: 6})
	require.Empty(t, resp.Error)
	require.Len(t, resp.Values, 6)
	for _, v := range resp.Values {
		assert.Equal(t, want.Roll(), v)
	}
	assert.Equal(t, int64(6), resp.Steps)

	resp = call(t, conn, Request{Op: OpJump, Delta: -6})
	require.Empty(t, resp.Error)
	assert.Equal(t, int64(0), resp.Steps)

	again := call(t, conn, Request{Op: OpRoll, Count: 1})
	assert.Equal(t, uint64(0x86b1da1d72062b68), again.Values[0])
}

func TestStreamOps(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()
	conn := dial(t, ts, "?seed=7&sequence=3")

	resp := call(t, conn, Request{Op: OpBind, Range: 6, Count: 100})
	require.Empty(t, resp.Error)
	require.Len(t, resp.Values, 100)
	for _, v := range resp.Values {
		assert.Less(t, v, uint64(6))
	}

	for _, op := range []string{OpFlush, OpPull, OpYield} {
		resp = call(t, conn, Request{Op: op, Count: 10})
		require.Empty(t, resp.Error, op)
		require.Len(t, resp.Floats, 10)
		for _, f := range resp.Floats {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.Less(t, f, 1.0)
		}
	}

	resp = call(t, conn, Request{Op: OpClip, Min: "-5", Max: "5", Count: 50})
	require.Empty(t, resp.Error)
	for _, v := range resp.Ints {
		assert.GreaterOrEqual(t, v, int64(-5))
		assert.LessOrEqual(t, v, int64(5))
	}

	resp = call(t, conn, Request{Op: OpClipFloat, Min: "0", Max: "9", Count: 5})
	require.Empty(t, resp.Error)
	assert.Len(t, resp.Floats, 5)

	resp = call(t, conn, Request{Op: OpState})
	assert.True(t, strings.HasPrefix(resp.State, "0x"))
	assert.Len(t, resp.State, 34)
}

func TestStreamErrorsKeepConnectionOpen(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()
	conn := dial(t, ts, "?seed=1")

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"bind below two", Request{Op: OpBind, Range: 1}, pcg.ErrInvalidRange.Error()},
		{"empty clip", Request{Op: OpClip, Min: "5", Max: "5"}, pcg.ErrInvalidRange.Error()},
		{"reversed float clip", Request{Op: OpClipFloat, Min: "10", Max: "3"}, pcg.ErrInvalidRange.Error()},
		{"missing bounds", Request{Op: OpClip}, "min"},
		{"unknown", Request{Op: "shuffle"}, ErrUnknownOp.Error()},
		{"too many", Request{Op: OpRoll, Count: MaxCount + 1}, ErrBadCount.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, conn, tt.req)
			assert.Contains(t, resp.Error, tt.want)
			assert.Empty(t, resp.Values)
			assert.Empty(t, resp.Ints)
			assert.Empty(t, resp.Floats)
		})
	}

	resp := call(t, conn, Request{Op: OpRoll})
	assert.Empty(t, resp.Error)
	assert.Len(t, resp.Values, 1)
}

func TestStreamConnectionsGetDistinctStreams(t *testing.T) {
	s := NewServer(testLogger(), WithSeed(pcg.Uint128From64(42)))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	a := call(t, dial(t, ts, ""), Request{Op: OpRoll, Count: 20})
	b := call(t, dial(t, ts, ""), Request{Op: OpRoll, Count: 20})
	assert.NotEqual(t, a.Values, b.Values)

	// the first connection was handed sequence 1
	want := pcg.New(42, 1)
	assert.Equal(t, want.Roll(), a.Values[0])
}

func TestStreamDefaultSeedUsesClock(t *testing.T) {
	mClock := quartz.NewMock(t)
	mClock.Set(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC))

	s := NewServer(testLogger(), WithClock(mClock))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := call(t, dial(t, ts, "?sequence=9"), Request{Op: OpRoll})
	want := pcg.New(uint64(mClock.Now().UnixMilli()), 9)
	assert.Equal(t, want.Roll(), resp.Values[0])
}

func TestStreamRejectsBadQuery(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?seed=banana"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStreamMalformedJSONClosesConnection(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(NewServer(testLogger()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := NewServer(testLogger())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "ws://" + ln.Addr().String() + "/ws?seed=1"
	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		c, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		conn = c
		return true
	}, 2*time.Second, 10*time.Millisecond)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "open connections are closed on shutdown")
}

func TestResponseJSONShape(t *testing.T) {
	b, err := json.Marshal(Response{Op: OpRoll, Values: []uint64{1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"roll","values":[1],"steps":0}`, string(b))
}
