package feed

import (
	"context"
	"fmt"
	"log/slog"
)

// LoadInitial replaces the feed with the newest page. Only one load (initial
// or more) runs at a time; a second call while one is in flight returns
// ErrLoadInFlight.
func (c *Controller) LoadInitial(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.loading {
		c.mu.Unlock()
		return ErrLoadInFlight
	}
	c.loading = true
	c.mu.Unlock()

	page, err := c.store.List(ctx, nil, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("load initial page: %w", err)
	}

	c.notes = page.Notes
	c.cursor = page.NextCursor
	c.hasMore = page.HasMore
	c.resort()

	c.log.DebugContext(ctx, "feed loaded",
		slog.Int("notes", len(c.notes)),
		slog.Bool("has_more", c.hasMore),
	)

	return nil
}

// LoadMore appends the page after the last loaded note. It is a no-op when no
// further page was reported (ErrNoMore) or when a load is already running
// (ErrLoadInFlight).
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.loading {
		c.mu.Unlock()
		return ErrLoadInFlight
	}
	if !c.hasMore || c.cursor == nil {
		c.mu.Unlock()
		return ErrNoMore
	}
	cursor := *c.cursor
	c.loading = true
	c.mu.Unlock()

	page, err := c.store.List(ctx, &cursor, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("load more: %w", err)
	}

	c.notes = append(c.notes, page.Notes...)
	if page.NextCursor != nil {
		c.cursor = page.NextCursor
	}
	c.hasMore = page.HasMore
	c.resort()

	c.log.DebugContext(ctx, "feed page appended",
		slog.Int("added", len(page.Notes)),
		slog.Int("notes", len(c.notes)),
		slog.Bool("has_more", c.hasMore),
	)

	return nil
}
