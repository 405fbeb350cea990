package wall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// Delete removes a note. Deleting an id that is already gone is a success;
// the operation only reports store failures.
func (s *Service) Delete(ctx context.Context, noteID uuid.UUID) error {
	if noteID == uuid.Nil {
		return domain.NewValidationError("note_id", "required")
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted",
		slog.String("note_id", noteID.String()),
	)

	return nil
}
