//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wall-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wall-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/wall-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wall-backend/internal/adapter/rewrite"
	"github.com/heartmarshall/wall-backend/internal/config"
	"github.com/heartmarshall/wall-backend/internal/presence"
	"github.com/heartmarshall/wall-backend/internal/service/wall"
	"github.com/heartmarshall/wall-backend/internal/transport/middleware"
	"github.com/heartmarshall/wall-backend/internal/transport/rest"
	"github.com/heartmarshall/wall-backend/internal/transport/ws"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL     string
	Client  *http.Client
	Pool    *pgxpool.Pool
	Tracker *presence.Tracker
}

// serverOptions tune the stack for a specific scenario; the zero value gives
// production-like defaults.
type serverOptions struct {
	cap         int           // wall cap; 0 = 100
	pageSize    int           // feed page size; 0 = 12
	rewriteURL  string        // "" = rewrite disabled
	presenceTTL time.Duration // 0 = 30s (long enough to never expire mid-test)
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	if opts.cap == 0 {
		opts.cap = 100
	}
	if opts.pageSize == 0 {
		opts.pageSize = 12
	}
	if opts.presenceTTL == 0 {
		opts.presenceTTL = 30 * time.Second
	}

	// 1. Get pool from testcontainers-backed helper; every scenario starts
	// from an empty wall.
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateNotes(t, pool)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Storage and services.
	noteRepo := note.New(pool, txm, opts.cap)

	rewriteClient := rewrite.New(config.RewriteConfig{
		URL:     opts.rewriteURL,
		Timeout: 5 * time.Second,
	}, logger)

	wallService := wall.NewService(logger, noteRepo, rewriteClient, opts.pageSize)

	// 4. Presence stack; TTL is per-scenario so expiry is testable.
	tracker := presence.NewTracker(config.PresenceConfig{
		TTL:           opts.presenceTTL,
		SweepInterval: 200 * time.Millisecond,
		Identity:      config.PresenceIdentitySession,
	}, logger)
	t.Cleanup(tracker.Stop)

	// 5. Router with the full middleware chain.
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(logger, config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowedHeaders: "Content-Type",
		MaxAge:         86400,
	}, limiter, 10000, rest.RouterDeps{
		Health:  rest.NewHealthHandler(pool, tracker, "test-version"),
		Notes:   rest.NewNotesHandler(wallService, logger),
		Rewrite: rest.NewRewriteHandler(wallService, logger),
		Presence: ws.NewHandler(config.PresenceConfig{
			Identity: config.PresenceIdentitySession,
		}, tracker, logger),
	})

	// 6. httptest server.
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:     srv.URL,
		Client:  srv.Client(),
		Pool:    pool,
		Tracker: tracker,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into a generic map (nil for empty bodies).
func (ts *testServer) doJSON(t *testing.T, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return resp.StatusCode, result
}

// submitNote posts a note through the API and returns the created note JSON.
func (ts *testServer) submitNote(t *testing.T, name, body string) map[string]any {
	t.Helper()

	status, result := ts.doJSON(t, http.MethodPost, "/api/notes", map[string]string{
		"name":    name,
		"company": "Testers Inc",
		"email":   name + "@example.com",
		"body":    body,
	})
	if status != http.StatusCreated {
		t.Fatalf("submit note: status %d, body %v", status, result)
	}
	return result
}

// listNotes fetches one feed page through the API.
func (ts *testServer) listNotes(t *testing.T, query string) map[string]any {
	t.Helper()

	path := "/api/notes"
	if query != "" {
		path += "?" + query
	}
	status, result := ts.doJSON(t, http.MethodGet, path, nil)
	if status != http.StatusOK {
		t.Fatalf("list notes: status %d, body %v", status, result)
	}
	return result
}

// noteIDs extracts the id of every note in a list response, newest first.
func noteIDs(t *testing.T, list map[string]any) []string {
	t.Helper()

	notes, ok := list["notes"].([]any)
	if !ok {
		t.Fatalf("expected notes array, got %v", list["notes"])
	}
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		m, ok := n.(map[string]any)
		if !ok {
			t.Fatalf("expected note object, got %v", n)
		}
		id, ok := m["id"].(string)
		if !ok {
			t.Fatalf("expected note id string, got %v", m["id"])
		}
		ids = append(ids, id)
	}
	return ids
}
