package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wall-backend/internal/config"
	"github.com/heartmarshall/wall-backend/internal/transport/middleware"
)

// RouterDeps bundles the handlers the router mounts.
type RouterDeps struct {
	Health   *HealthHandler
	Notes    *NotesHandler
	Rewrite  *RewriteHandler
	Presence http.Handler // WebSocket endpoint; mounted outside the API chain
}

// NewRouter builds the HTTP routing table. API routes run through the full
// middleware chain; the health probes stay outside the rate limiter so an
// aggressive client cannot starve them; the WebSocket endpoint skips the
// chain entirely (the upgrade must see the raw ResponseWriter).
func NewRouter(
	logger *slog.Logger,
	cfg config.CORSConfig,
	limiter *middleware.RateLimiter,
	maxPerMinute int,
	deps RouterDeps,
) http.Handler {
	api := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg),
		limiter.Limit(maxPerMinute),
	)

	probes := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
	)

	mux := http.NewServeMux()

	mux.Handle("GET /live", probes(http.HandlerFunc(deps.Health.Live)))
	mux.Handle("GET /ready", probes(http.HandlerFunc(deps.Health.Ready)))
	mux.Handle("GET /health", probes(http.HandlerFunc(deps.Health.Health)))

	mux.Handle("POST /api/notes", api(http.HandlerFunc(deps.Notes.Create)))
	mux.Handle("GET /api/notes", api(http.HandlerFunc(deps.Notes.List)))
	mux.Handle("POST /api/notes/{id}/like", api(http.HandlerFunc(deps.Notes.Like)))
	mux.Handle("PUT /api/notes/{id}/likes", api(http.HandlerFunc(deps.Notes.SetLikes)))
	mux.Handle("DELETE /api/notes/{id}", api(http.HandlerFunc(deps.Notes.Delete)))
	mux.Handle("OPTIONS /api/notes", api(http.NotFoundHandler()))
	mux.Handle("OPTIONS /api/notes/{id}", api(http.NotFoundHandler()))
	mux.Handle("OPTIONS /api/notes/{id}/like", api(http.NotFoundHandler()))
	mux.Handle("OPTIONS /api/notes/{id}/likes", api(http.NotFoundHandler()))

	mux.Handle("POST /api/rewrite", api(http.HandlerFunc(deps.Rewrite.Rewrite)))
	mux.Handle("OPTIONS /api/rewrite", api(http.NotFoundHandler()))

	if deps.Presence != nil {
		mux.Handle("GET /ws/presence", deps.Presence)
	}

	return mux
}
