package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{StreamBatch: 100})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.True(t, strings.HasPrefix(resp.Header.Get("Server"), "chaosgame/"))
}

func TestGames(t *testing.T) {
	ts := newTestServer(t)

	var games []gameInfo
	getJSON(t, ts.URL+"/games", &games)
	require.Len(t, games, 3)
	assert.Equal(t, game.HistoryExclusion, games[0].Type)
	assert.Contains(t, games[0].AdditionalControls, game.ControlHistory)
	assert.True(t, games[2].FixedTransforms)
	assert.True(t, games[2].DisableTargetColoringMode)
}

func TestPresets(t *testing.T) {
	ts := newTestServer(t)

	var presets []game.Preset
	getJSON(t, ts.URL+"/presets", &presets)
	require.NotEmpty(t, presets)
	assert.Equal(t, "Sierpinski Triangle", presets[0].Name)
}

func TestRenderAndRecords(t *testing.T) {
	ts := newTestServer(t)

	body := `{"preset":"Sierpinski Triangle","points":500}`
	resp, err := http.Post(ts.URL+"/render?format=svg", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "500", resp.Header.Get("X-Points"))
	assert.Equal(t, "false", resp.Header.Get("X-Stuck"))
	id := resp.Header.Get("X-Render-ID")
	require.NotEmpty(t, id)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "<svg"))

	var rec store.Record
	recResp := getJSON(t, ts.URL+"/renders/"+id, &rec)
	assert.Equal(t, http.StatusOK, recResp.StatusCode)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Sierpinski Triangle", rec.Preset)
	assert.Equal(t, 500, rec.Stats.Points)

	var recs []store.Record
	getJSON(t, ts.URL+"/renders?limit=5", &recs)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
}

func TestStats(t *testing.T) {
	stats := observability.NewCounters()
	t.Cleanup(observability.Register(stats))
	ts := httptest.NewServer(New(Config{Stats: stats}).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(`{"points":100}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap map[string]map[string]observability.Stat
	getJSON(t, ts.URL+"/stats", &snap)
	assert.GreaterOrEqual(t, snap["generate"][pipeline.DefaultGame].Events, int64(1))
	assert.GreaterOrEqual(t, snap["http.request"]["POST /render"].Events, int64(1))
}

func TestStatsDisabled(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderDefaultsWithEmptyBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/render?format=png", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "50000", resp.Header.Get("X-Points"))
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"bad format", "?format=gif", `{}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad json", "", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown game", "", `{"game":"nope"}`, http.StatusBadRequest, "INVALID_GAME"},
		{"bad color", "", `{"controls":{"num_targets":3,"colors":["red"]}}`, http.StatusBadRequest, "INVALID_COLOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/render"+tt.query, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var e errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestGetRenderNotFound(t *testing.T) {
	ts := newTestServer(t)

	var e errorResponse
	resp := getJSON(t, ts.URL+"/renders/does-not-exist", &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "RENDER_NOT_FOUND", string(e.Code))
}

func TestListRendersBadLimit(t *testing.T) {
	ts := newTestServer(t)

	var e errorResponse
	resp := getJSON(t, ts.URL+"/renders?limit=x", &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func dialStream(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	conn := dialStream(t, ts)

	req := StreamRequest{Options: pipeline.Options{Points: 250}}
	require.NoError(t, conn.WriteJSON(req))

	total, batches := 0, 0
	for {
		var msg StreamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.NotEmpty(t, msg.Session)
		if msg.Done {
			assert.False(t, msg.Stuck)
			assert.Empty(t, msg.Error)
			break
		}
		assert.LessOrEqual(t, len(msg.Points), 100)
		total += len(msg.Points)
		batches++
	}
	assert.Equal(t, 250, total)
	assert.Equal(t, 3, batches)
}

func TestStreamBatchOverride(t *testing.T) {
	ts := newTestServer(t)
	conn := dialStream(t, ts)

	require.NoError(t, conn.WriteJSON(StreamRequest{Options: pipeline.Options{Points: 40}, Batch: 40}))

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Len(t, msg.Points, 40)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.True(t, msg.Done)
}

func TestStreamStuck(t *testing.T) {
	ts := newTestServer(t)
	conn := dialStream(t, ts)

	req := StreamRequest{Options: pipeline.Options{
		Controls: game.Controls{NumTargets: 3, History: 2, Exclusions: []int{0, 2}},
		Points:   100,
	}}
	require.NoError(t, conn.WriteJSON(req))

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.True(t, msg.Done)
	assert.True(t, msg.Stuck)
	assert.Empty(t, msg.Points)
}

func TestStreamInvalidOptions(t *testing.T) {
	ts := newTestServer(t)
	conn := dialStream(t, ts)

	require.NoError(t, conn.WriteJSON(StreamRequest{Options: pipeline.Options{Game: "nope"}}))

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.True(t, msg.Done)
	assert.Contains(t, msg.Error, "unknown game")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor("INVALID_CONTROLS"))
	assert.Equal(t, http.StatusNotFound, statusFor("RENDER_NOT_FOUND"))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor("TIMEOUT"))
	assert.Equal(t, http.StatusBadGateway, statusFor("NETWORK_ERROR"))
}
