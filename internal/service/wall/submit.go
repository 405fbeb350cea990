package wall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

// Submit validates the form fields and creates a new note. The store assigns
// the id, timestamp and color; likes start at zero. When the wall is full the
// store makes room by evicting the least-liked, oldest note.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domain.Note, error) {
	if err := input.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err := s.notes.Create(ctx, input.draft())
	if err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	bodyPreview := note.Body
	if len(bodyPreview) > 50 {
		bodyPreview = bodyPreview[:50]
	}

	s.log.InfoContext(ctx, "note submitted",
		slog.String("note_id", note.ID.String()),
		slog.String("color", note.Color.String()),
		slog.String("body", bodyPreview),
	)

	return note, nil
}
