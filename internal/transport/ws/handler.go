// Package ws exposes the presence tracker over a WebSocket endpoint. Each
// connection holds one liveness record alive: the server registers the client
// on upgrade, refreshes it on heartbeat frames, pushes the active count to
// the client whenever it changes, and tears the record down when the
// connection goes away.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/heartmarshall/wall-backend/internal/config"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before the read
	// loop gives up on it.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait so the peer always has a
	// ping to answer before the deadline.
	pingPeriod = 30 * time.Second
)

// tracker is the part of presence.Tracker the handler needs.
type tracker interface {
	Register(key string)
	Heartbeat(key string)
	Deregister(key string)
	Subscribe() (<-chan int, func())
}

// Handler upgrades GET /ws/presence requests and speaks the presence
// protocol: the client sends {"action":"heartbeat"} frames, the server
// pushes {"type":"presence.count","count":N} frames on every change.
type Handler struct {
	tracker  tracker
	identity string
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a presence Handler using the configured identity
// strategy. Origins are not restricted here; the wall is a public surface
// and the REST layer's CORS policy governs browsers.
func NewHandler(cfg config.PresenceConfig, trk tracker, logger *slog.Logger) *Handler {
	return &Handler{
		tracker:  trk,
		identity: cfg.Identity,
		log:      logger.With("handler", "presence"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// countFrame is pushed to the client whenever the active count changes.
type countFrame struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// clientFrame is what the client sends; only Action is inspected.
type clientFrame struct {
	Action string `json:"action"`
}

// pongFrame answers an application-level ping.
type pongFrame struct {
	Type string `json:"type"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.DebugContext(r.Context(), "upgrade failed", slog.String("error", err.Error()))
		return
	}

	key := identityKey(h.identity, r)
	h.tracker.Register(key)
	counts, cancel := h.tracker.Subscribe()

	h.log.DebugContext(r.Context(), "presence client connected", slog.String("key", key))

	done := make(chan struct{})
	pongs := make(chan struct{}, 1)
	go h.writePump(conn, counts, pongs, done)

	h.readPump(conn, key, pongs)

	close(done)
	cancel()
	h.tracker.Deregister(key)
	conn.Close()

	h.log.DebugContext(r.Context(), "presence client disconnected", slog.String("key", key))
}

// readPump consumes client frames until the connection dies. Heartbeats
// refresh the liveness record; any readable frame also resets the read
// deadline, so an active client never expires mid-connection.
func (h *Handler) readPump(conn *websocket.Conn, key string, pongs chan<- struct{}) {
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("presence read error", slog.String("error", err.Error()))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck

		var frame clientFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			continue
		}

		switch frame.Action {
		case "heartbeat":
			h.tracker.Heartbeat(key)
		case "ping":
			// Answered from writePump; coalescing repeated pings is fine.
			select {
			case pongs <- struct{}{}:
			default:
			}
		}
	}
}

// writePump pushes count changes, pong answers and protocol pings until
// done closes or a write fails. Writes happen only here, so the connection
// never sees concurrent writers.
func (h *Handler) writePump(conn *websocket.Conn, counts <-chan int, pongs <-chan struct{}, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-pongs:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteJSON(pongFrame{Type: "pong"}); err != nil {
				return
			}
		case n, ok := <-counts:
			if !ok {
				// Tracker stopped; say goodbye properly.
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
				conn.WriteMessage(websocket.CloseMessage,        //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteJSON(countFrame{Type: "presence.count", Count: n}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
