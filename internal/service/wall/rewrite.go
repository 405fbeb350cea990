package wall

import (
	"context"
	"fmt"
	"log/slog"
)

// Rewrite sends the draft to the rewrite webhook and returns the replacement
// body as plain text. The draft itself is never changed: on failure the
// caller keeps what the visitor typed and shows the reason.
func (s *Service) Rewrite(ctx context.Context, input RewriteInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	body, err := s.rewriter.Rewrite(ctx, input.draft())
	if err != nil {
		return "", fmt.Errorf("rewrite draft: %w", err)
	}

	s.log.InfoContext(ctx, "draft rewritten",
		slog.Int("from_chars", len(input.Body)),
		slog.Int("to_chars", len(body)),
	)

	return body, nil
}
