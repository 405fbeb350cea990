package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wall-backend/internal/config"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// Client calls the remote rewrite webhook that turns a draft body into a
// polished replacement. One request, one response: failures are reported to
// the caller as-is and never retried, so a flaky webhook cannot stall a
// submission for longer than its timeout.
type Client struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client from the webhook configuration. The returned client is
// usable even when no URL is configured; Rewrite then fails with
// domain.ErrUnavailable.
func New(cfg config.RewriteConfig, logger *slog.Logger) *Client {
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "rewrite"),
	}
}

// apiRequest is the webhook request payload: the draft body plus the contact
// fields the webhook uses for tone and sign-off.
type apiRequest struct {
	Body      string `json:"body"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Signature string `json:"signature,omitempty"`
}

// apiResponse is the webhook response payload. Body may contain HTML markup.
type apiResponse struct {
	Body string `json:"body"`
}

// Rewrite sends the draft to the webhook and returns the replacement body
// reduced to plain text. The draft itself is never modified; on any failure
// the caller keeps its original body.
func (c *Client) Rewrite(ctx context.Context, draft domain.Draft) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("rewrite: no webhook configured: %w", domain.ErrUnavailable)
	}

	payload, err := json.Marshal(apiRequest{
		Body:      draft.Body,
		Name:      draft.Name,
		Company:   draft.Company,
		Email:     draft.Email,
		Signature: draft.Signature,
	})
	if err != nil {
		return "", fmt.Errorf("rewrite: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "rewrite request", slog.Int("body_chars", len(draft.Body)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("rewrite: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "rewrite request failed", slog.String("error", err.Error()))
		if ctx.Err() != nil {
			return "", fmt.Errorf("rewrite: request failed: %w", ctx.Err())
		}
		return "", fmt.Errorf("rewrite: request failed: %w", domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "rewrite rejected", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("rewrite: unexpected status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("rewrite: read body: %w", domain.ErrUnavailable)
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("rewrite: decode json: %w", domain.ErrUnavailable)
	}

	text := plainText(result.Body)
	if text == "" {
		return "", fmt.Errorf("rewrite: webhook returned an empty body: %w", domain.ErrUnavailable)
	}

	c.log.DebugContext(ctx, "rewrite response",
		slog.Int("status", resp.StatusCode),
		slog.Int("body_chars", len(text)),
	)

	return text, nil
}
