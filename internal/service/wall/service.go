package wall

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

const (
	// DefaultPageSize is the feed page size when the caller does not ask for
	// a specific limit.
	DefaultPageSize = 12
	// MaxPageSize bounds a single List call; the wall itself never holds
	// more notes than this.
	MaxPageSize = 100
)

type noteRepo interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Note, error)
	List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error)
	UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (domain.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type rewriter interface {
	Rewrite(ctx context.Context, draft domain.Draft) (string, error)
}

// Service provides the wall operations: submitting, listing, liking and
// deleting notes, plus the draft rewrite pass-through.
type Service struct {
	notes    noteRepo
	rewriter rewriter
	pageSize int
	log      *slog.Logger
}

// NewService creates a new wall service. pageSize is the default List page
// size; values <= 0 fall back to DefaultPageSize.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	rewriter rewriter,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		notes:    notes,
		rewriter: rewriter,
		pageSize: pageSize,
		log:      log.With("service", "wall"),
	}
}
