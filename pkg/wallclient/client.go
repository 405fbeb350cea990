// Package wallclient is a Go client for the wall REST API. It satisfies the
// feed controller's Store interface, so a controller built for an in-process
// store runs unchanged against a remote wall.
package wallclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

// DefaultTimeout bounds each request when the caller does not supply its own
// http.Client.
const DefaultTimeout = 15 * time.Second

// Client talks to a wall server over HTTP. One request per call, no retries;
// cancellation and deadlines come from the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Useful for tests and for
// callers that manage transports themselves.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the wall server at baseURL, e.g.
// "https://wall.example.com". A trailing slash is tolerated.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type noteJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Likes     int       `json:"likes"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type listJSON struct {
	Notes      []noteJSON `json:"notes"`
	HasMore    bool       `json:"hasMore"`
	NextCursor *string    `json:"nextCursor"`
}

type likesJSON struct {
	ID    string `json:"id"`
	Likes int    `json:"likes"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func (n noteJSON) toDomain() (domain.Note, error) {
	id, err := uuid.Parse(n.ID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("parse note id %q: %w", n.ID, err)
	}
	return domain.Note{
		ID:        id,
		Name:      n.Name,
		Company:   n.Company,
		Email:     n.Email,
		Body:      n.Body,
		Likes:     n.Likes,
		Color:     domain.NoteColor(n.Color),
		CreatedAt: n.CreatedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Store operations
// ---------------------------------------------------------------------------

// Create submits a draft and returns the published note as the server
// recorded it (id, color and timestamp are server-assigned).
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	payload := map[string]string{
		"name":      draft.Name,
		"company":   draft.Company,
		"email":     draft.Email,
		"body":      draft.Body,
		"signature": draft.Signature,
	}

	var out noteJSON
	if err := c.do(ctx, http.MethodPost, "/api/notes", payload, http.StatusCreated, &out); err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	note, err := out.toDomain()
	if err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// List fetches one feed page. cursor is the createdAt of the last note of
// the previous page, nil for the first page.
func (c *Client) List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error) {
	q := url.Values{}
	if cursor != nil {
		q.Set("cursor", cursor.Format(time.RFC3339Nano))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/notes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out listJSON
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out); err != nil {
		return domain.NotePage{}, fmt.Errorf("list notes: %w", err)
	}

	page := domain.NotePage{
		Notes:   make([]domain.Note, 0, len(out.Notes)),
		HasMore: out.HasMore,
	}
	for _, n := range out.Notes {
		note, err := n.toDomain()
		if err != nil {
			return domain.NotePage{}, fmt.Errorf("list notes: %w", err)
		}
		page.Notes = append(page.Notes, note)
	}
	if out.NextCursor != nil {
		ts, err := time.Parse(time.RFC3339Nano, *out.NextCursor)
		if err != nil {
			return domain.NotePage{}, fmt.Errorf("list notes: parse cursor %q: %w", *out.NextCursor, err)
		}
		page.NextCursor = &ts
	}
	return page, nil
}

// UpdateLikes overwrites the note's like counter with an absolute value.
// The server confirms only the counter, so the returned Note carries the id
// and likes; callers that need the full note keep their own copy.
func (c *Client) UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error) {
	payload := map[string]int{"likes": likes}

	var out likesJSON
	path := "/api/notes/" + id.String() + "/likes"
	if err := c.do(ctx, http.MethodPut, path, payload, http.StatusOK, &out); err != nil {
		return domain.Note{}, fmt.Errorf("update likes: %w", err)
	}

	return domain.Note{ID: id, Likes: out.Likes}, nil
}

// Like asks the server to increment the counter atomically. Prefer this over
// UpdateLikes when the caller does not hold a local copy of the counter.
func (c *Client) Like(ctx context.Context, id uuid.UUID) (int, error) {
	var out likesJSON
	path := "/api/notes/" + id.String() + "/like"
	if err := c.do(ctx, http.MethodPost, path, nil, http.StatusOK, &out); err != nil {
		return 0, fmt.Errorf("like note: %w", err)
	}
	return out.Likes, nil
}

// Delete removes a note. The server treats a missing note as deleted, so
// Delete never reports not-found.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	path := "/api/notes/" + id.String()
	if err := c.do(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Rewrite sends the draft to the server's rewrite endpoint and returns the
// polished body. The draft is never changed on failure.
func (c *Client) Rewrite(ctx context.Context, draft domain.Draft) (string, error) {
	payload := map[string]string{
		"name":      draft.Name,
		"company":   draft.Company,
		"email":     draft.Email,
		"body":      draft.Body,
		"signature": draft.Signature,
	}

	var out struct {
		Body string `json:"body"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/rewrite", payload, http.StatusOK, &out); err != nil {
		return "", fmt.Errorf("rewrite draft: %w", err)
	}
	return out.Body, nil
}

// ---------------------------------------------------------------------------
// Plumbing
// ---------------------------------------------------------------------------

// do performs one request and decodes the response into out (skipped when
// out is nil). A status other than wantStatus becomes an error carrying the
// matching domain sentinel.
func (c *Client) do(ctx context.Context, method, path string, payload any, wantStatus int, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return c.statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError turns a non-success response into an error wrapping the domain
// sentinel that matches the status code, keeping errors.Is checks working
// across the HTTP boundary.
func (c *Client) statusError(resp *http.Response) error {
	var e errorJSON
	msg := resp.Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e); err == nil && e.Error != "" {
		msg = e.Error
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrUnavailable, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
}
