package wall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// Like increments a note's like counter by one on the server side and returns
// the updated note. Concurrent likes all land; this is the operation feeds
// should use.
func (s *Service) Like(ctx context.Context, noteID uuid.UUID) (domain.Note, error) {
	if noteID == uuid.Nil {
		return domain.Note{}, domain.NewValidationError("note_id", "required")
	}

	note, err := s.notes.IncrementLikes(ctx, noteID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("like note: %w", err)
	}

	s.log.InfoContext(ctx, "note liked",
		slog.String("note_id", note.ID.String()),
		slog.Int("likes", note.Likes),
	)

	return note, nil
}

// SetLikes overwrites a note's like counter with an absolute value and
// returns the updated note. Two concurrent callers race and the later write
// wins; kept for clients that compute likes+1 themselves. New code should
// call Like instead.
func (s *Service) SetLikes(ctx context.Context, input SetLikesInput) (domain.Note, error) {
	if err := input.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err := s.notes.UpdateLikes(ctx, input.NoteID, input.Likes)
	if err != nil {
		return domain.Note{}, fmt.Errorf("set likes: %w", err)
	}

	s.log.InfoContext(ctx, "note likes overwritten",
		slog.String("note_id", note.ID.String()),
		slog.Int("likes", note.Likes),
	)

	return note, nil
}
