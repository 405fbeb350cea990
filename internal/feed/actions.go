package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// Submit validates the draft locally, creates the note in the store and
// prepends the result to the feed. Invalid drafts are rejected before any
// remote call.
func (c *Controller) Submit(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	if err := draft.Validate(); err != nil {
		return domain.Note{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.Note{}, ErrClosed
	}
	c.mu.Unlock()

	note, err := c.store.Create(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.Note{}, ErrClosed
	}
	if err != nil {
		return domain.Note{}, fmt.Errorf("submit note: %w", err)
	}

	// The new note goes straight to the top; the next full sort slots it in.
	c.notes = append([]domain.Note{note}, c.notes...)

	c.log.DebugContext(ctx, "note submitted to feed",
		slog.String("note_id", note.ID.String()),
	)

	return note, nil
}

// Like sends likes+1 for the note as seen in this feed and applies the
// store's answer once it confirms. The local count is not touched before the
// call succeeds, so a failure leaves the feed as it was. Two feeds liking the
// same note concurrently both send the same value and one increment is lost;
// that overwrite behavior is part of the store contract.
func (c *Controller) Like(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("like note: %w", domain.ErrNotFound)
	}
	next := c.notes[idx].Likes + 1
	c.mu.Unlock()

	updated, err := c.store.UpdateLikes(ctx, id, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("like note: %w", err)
	}

	// The note may have been deleted from the feed while the call ran. Only
	// the counter comes from the store's answer; some stores confirm likes
	// without echoing the rest of the note.
	if idx := c.indexOf(id); idx >= 0 {
		c.notes[idx].Likes = updated.Likes
	}

	return nil
}

// Delete removes the note from the store and then from the feed. A note the
// store no longer has still disappears locally.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	err := c.store.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if idx := c.indexOf(id); idx >= 0 {
		c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	}

	c.log.DebugContext(ctx, "note removed from feed",
		slog.String("note_id", id.String()),
	)

	return nil
}
