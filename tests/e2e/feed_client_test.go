//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wall-backend/internal/domain"
	"github.com/heartmarshall/wall-backend/internal/feed"
	"github.com/heartmarshall/wall-backend/pkg/wallclient"
)

// TestE2E_FeedControllerOverHTTP drives the feed controller through the
// wallclient against the live server: the controller's local state must stay
// in step with the wall without any in-process shortcuts.
func TestE2E_FeedControllerOverHTTP(t *testing.T) {
	ts := setupTestServer(t, serverOptions{})
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	client := wallclient.New(ts.URL, wallclient.WithHTTPClient(ts.Client))
	controller := feed.New(client, 12, logger)
	defer controller.Close()

	// Submit through the controller; the server-assigned note lands first in
	// the local feed.
	note, err := controller.Submit(ctx, domain.Draft{
		Name:    "ada",
		Company: "Feeders Inc",
		Email:   "ada@example.com",
		Body:    "hello from the controller",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, note.ID, "server must assign an id")

	notes := controller.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	// Like through the controller; the confirmed counter comes back from the
	// server.
	require.NoError(t, controller.Like(ctx, note.ID))
	notes = controller.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, 1, notes[0].Likes)

	// A fresh controller sees the same wall after LoadInitial.
	other := feed.New(client, 12, logger)
	defer other.Close()

	require.NoError(t, other.LoadInitial(ctx))
	otherNotes := other.Notes()
	require.Len(t, otherNotes, 1)
	assert.Equal(t, note.ID, otherNotes[0].ID)
	assert.Equal(t, 1, otherNotes[0].Likes)

	// Delete propagates: locally at once, remotely for everyone else.
	require.NoError(t, controller.Delete(ctx, note.ID))
	assert.Empty(t, controller.Notes())

	require.NoError(t, other.LoadInitial(ctx))
	assert.Empty(t, other.Notes())
}

// TestE2E_FeedControllerPagination pages a seeded wall through the HTTP
// client until the feed is exhausted.
func TestE2E_FeedControllerPagination(t *testing.T) {
	ts := setupTestServer(t, serverOptions{pageSize: 2})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ts.submitNote(t, "seeder", "note")
	}

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	client := wallclient.New(ts.URL, wallclient.WithHTTPClient(ts.Client))
	controller := feed.New(client, 2, logger)
	defer controller.Close()

	require.NoError(t, controller.LoadInitial(ctx))
	require.Len(t, controller.Notes(), 2)
	require.True(t, controller.HasMore())

	for controller.HasMore() {
		require.NoError(t, controller.LoadMore(ctx))
	}

	assert.Len(t, controller.Notes(), 5)
}
