package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wall-backend/internal/service/wall"
)

// rewriteService defines the minimal interface needed by RewriteHandler.
type rewriteService interface {
	Rewrite(ctx context.Context, input wall.RewriteInput) (string, error)
}

// RewriteHandler serves the draft rewrite endpoint.
type RewriteHandler struct {
	svc rewriteService
	log *slog.Logger
}

// NewRewriteHandler creates a RewriteHandler.
func NewRewriteHandler(svc rewriteService, logger *slog.Logger) *RewriteHandler {
	return &RewriteHandler{svc: svc, log: logger.With("handler", "rewrite")}
}

type rewriteRequest struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	Signature string `json:"signature"`
}

type rewriteResponse struct {
	Body string `json:"body"`
}

// Rewrite handles POST /api/rewrite. The draft is never changed on failure;
// the client keeps what the visitor typed and shows the reason.
func (h *RewriteHandler) Rewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	body, err := h.svc.Rewrite(r.Context(), wall.RewriteInput{
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Body:      req.Body,
		Signature: req.Signature,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, rewriteResponse{Body: body})
}
