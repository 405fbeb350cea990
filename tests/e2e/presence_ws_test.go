//go:build e2e

package e2e_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presenceFrame struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// dialPresence opens a WebSocket connection to the presence endpoint.
func dialPresence(t *testing.T, ts *testServer) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/presence"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "dial presence websocket")
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForCount reads presence frames until the pushed count matches want.
func waitForCount(t *testing.T, conn *websocket.Conn, want int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for presence.count=%d", want)

		var frame presenceFrame
		require.NoError(t, json.Unmarshal(raw, &frame))
		if frame.Type == "presence.count" && frame.Count == want {
			return
		}
	}
}

// TestE2E_PresenceCountFollowsConnections verifies the pushed active count
// tracks connects and disconnects end to end.
func TestE2E_PresenceCountFollowsConnections(t *testing.T) {
	ts := setupTestServer(t, serverOptions{})

	first := dialPresence(t, ts)
	waitForCount(t, first, 1)

	second := dialPresence(t, ts)
	waitForCount(t, second, 2)
	waitForCount(t, first, 2)

	require.NoError(t, second.Close())
	waitForCount(t, first, 1)

	assert.Equal(t, 1, ts.Tracker.Count())
}

// TestE2E_PresenceHeartbeatKeepsSessionAlive verifies a heartbeating client
// survives the expiry sweep while a silent one would not.
func TestE2E_PresenceHeartbeatKeepsSessionAlive(t *testing.T) {
	ts := setupTestServer(t, serverOptions{presenceTTL: 2 * time.Second})

	conn := dialPresence(t, ts)
	waitForCount(t, conn, 1)

	// The test tracker expires sessions after 2s; heartbeat for longer than
	// that and verify the session is still counted.
	stop := time.After(3 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for alive := true; alive; {
		select {
		case <-stop:
			alive = false
		case <-ticker.C:
			err := conn.WriteJSON(map[string]string{"action": "heartbeat"})
			require.NoError(t, err)
		}
	}

	assert.Equal(t, 1, ts.Tracker.Count())
}

// TestE2E_PresencePingPong verifies the protocol-level ping action gets a
// pong frame back.
func TestE2E_PresencePingPong(t *testing.T) {
	ts := setupTestServer(t, serverOptions{})

	conn := dialPresence(t, ts)
	waitForCount(t, conn, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))

	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for pong")

		var frame map[string]any
		require.NoError(t, json.Unmarshal(raw, &frame))
		if frame["type"] == "pong" {
			return
		}
	}
}
