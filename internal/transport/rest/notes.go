package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
	"github.com/heartmarshall/wall-backend/internal/service/wall"
)

// wallService defines the minimal interface needed by NotesHandler.
type wallService interface {
	Submit(ctx context.Context, input wall.SubmitInput) (domain.Note, error)
	List(ctx context.Context, input wall.ListInput) (domain.NotePage, error)
	Like(ctx context.Context, noteID uuid.UUID) (domain.Note, error)
	SetLikes(ctx context.Context, input wall.SetLikesInput) (domain.Note, error)
	Delete(ctx context.Context, noteID uuid.UUID) error
}

// NotesHandler serves the wall feed REST endpoints.
type NotesHandler struct {
	svc wallService
	log *slog.Logger
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(svc wallService, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, log: logger.With("handler", "notes")}
}

type createNoteRequest struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	Signature string `json:"signature"`
}

type setLikesRequest struct {
	Likes int `json:"likes"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Likes     int       `json:"likes"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type listNotesResponse struct {
	Notes      []noteResponse `json:"notes"`
	HasMore    bool           `json:"hasMore"`
	NextCursor *string        `json:"nextCursor,omitempty"`
}

type likesResponse struct {
	ID    string `json:"id"`
	Likes int    `json:"likes"`
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.Submit(r.Context(), wall.SubmitInput{
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Body:      req.Body,
		Signature: req.Signature,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// List handles GET /api/notes?cursor=<RFC3339Nano>&limit=<n>.
// The cursor is the createdAt of the last note of the previous page; clients
// carry it forward opaquely.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	var input wall.ListInput

	if raw := r.URL.Query().Get("cursor"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cursor")
			return
		}
		input.Cursor = &ts
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		input.Limit = limit
	}

	page, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(page))
}

// Like handles POST /api/notes/{id}/like. The increment happens in the
// store, so concurrent likes all land.
func (h *NotesHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.svc.Like(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likesResponse{ID: note.ID.String(), Likes: note.Likes})
}

// SetLikes handles PUT /api/notes/{id}/likes. It overwrites the counter with
// an absolute value; kept for clients that compute likes+1 themselves.
func (h *NotesHandler) SetLikes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req setLikesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.SetLikes(r.Context(), wall.SetLikesInput{NoteID: id, Likes: req.Likes})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likesResponse{ID: note.ID.String(), Likes: note.Likes})
}

// Delete handles DELETE /api/notes/{id}. Deleting a note that is already
// gone responds 204 like any other delete.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteID parses the {id} path segment. On failure it writes a 400 response
// and returns ok=false.
func (h *NotesHandler) noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *NotesHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	handleError(w, r, h.log, err)
}

// handleError maps domain errors to HTTP status codes. Shared by every
// handler in the package.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID.String(),
		Name:      n.Name,
		Company:   n.Company,
		Email:     n.Email,
		Body:      n.Body,
		Likes:     n.Likes,
		Color:     n.Color.String(),
		CreatedAt: n.CreatedAt,
	}
}

func toListResponse(page domain.NotePage) listNotesResponse {
	resp := listNotesResponse{
		Notes:   make([]noteResponse, 0, len(page.Notes)),
		HasMore: page.HasMore,
	}
	for _, n := range page.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	if page.NextCursor != nil {
		cursor := page.NextCursor.Format(time.RFC3339Nano)
		resp.NextCursor = &cursor
	}
	return resp
}
