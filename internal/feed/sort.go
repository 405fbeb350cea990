package feed

import (
	"sort"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

// SortMode selects the feed display order.
type SortMode string

const (
	// SortLatest orders by creation time, newest first.
	SortLatest SortMode = "latest"
	// SortLikes orders by like count, most liked first.
	SortLikes SortMode = "likes"
)

// ParseSortMode converts a string into a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortLatest:
		return SortLatest, nil
	case SortLikes:
		return SortLikes, nil
	default:
		return "", domain.NewValidationError("sort", "must be latest or likes")
	}
}

// Sort switches the display order and re-sorts the loaded feed. The sort is
// stable: notes that compare equal keep their previous relative order. It is
// a pure display transform and changes nothing in the store.
func (c *Controller) Sort(mode SortMode) error {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.mode = mode
	c.resort()
	return nil
}

// resort applies the current mode to the sequence. Callers must hold mu.
func (c *Controller) resort() {
	switch c.mode {
	case SortLikes:
		sort.SliceStable(c.notes, func(i, j int) bool {
			return c.notes[i].Likes > c.notes[j].Likes
		})
	default:
		sort.SliceStable(c.notes, func(i, j int) bool {
			return c.notes[i].CreatedAt.After(c.notes[j].CreatedAt)
		})
	}
}
