// Package feed holds the client-side state of the wall: the loaded pages,
// the display sort, the live visitor count, and the actions a visitor can
// take. A Controller owns one feed view; everything it shows lives in memory
// and is rebuilt from the store on the next LoadInitial.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// DefaultPageSize is the page size used when the Controller is built with a
// non-positive one.
const DefaultPageSize = 12

// Store is the remote wall the Controller works against. Implementations
// must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Note, error)
	List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error)
	UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Controller is safe for concurrent use. Remote calls run without the lock
// held, so unrelated operations never block each other; page loads are
// single-flight.
type Controller struct {
	store    Store
	pageSize int
	log      *slog.Logger

	mu          sync.Mutex
	notes       []domain.Note
	cursor      *time.Time
	hasMore     bool
	mode        SortMode
	loading     bool
	closed      bool
	activeCount int
}

// New creates a Controller over the given store. The feed starts empty in
// latest-first order; call LoadInitial to fill it.
func New(store Store, pageSize int, logger *slog.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		store:    store,
		pageSize: pageSize,
		mode:     SortLatest,
		log:      logger.With("component", "feed"),
	}
}

// Notes returns a snapshot of the feed in display order.
func (c *Controller) Notes() []domain.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// HasMore reports whether the store said another page may exist. A full
// final page keeps this true until the follow-up load comes back empty.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Loading reports whether a page load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Mode returns the current display sort.
func (c *Controller) Mode() SortMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ActiveCount returns the last visitor count pushed via SetActiveCount.
func (c *Controller) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeCount
}

// SetActiveCount records the live visitor count for display. Counts pushed
// after Close are ignored.
func (c *Controller) SetActiveCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.activeCount = n
}

// Close tears the feed down. Every later operation returns ErrClosed, and
// responses of calls still in flight are dropped instead of applied.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// indexOf returns the position of a note in the sequence, or -1.
// Callers must hold mu.
func (c *Controller) indexOf(id uuid.UUID) int {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}
