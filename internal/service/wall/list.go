package wall

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

// List returns one feed page, newest first. The returned page carries the
// cursor for the next call and the has-more flag; see domain.NotePage for the
// flag's exactly-full-page caveat.
func (s *Service) List(ctx context.Context, input ListInput) (domain.NotePage, error) {
	if err := input.Validate(); err != nil {
		return domain.NotePage{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.pageSize
	}

	page, err := s.notes.List(ctx, input.Cursor, limit)
	if err != nil {
		return domain.NotePage{}, fmt.Errorf("list notes: %w", err)
	}

	return page, nil
}
