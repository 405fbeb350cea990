package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/wall-backend/internal/domain"
	"github.com/heartmarshall/wall-backend/internal/service/wall"
)

type rewriteServiceMock struct {
	rewriteFn func(ctx context.Context, input wall.RewriteInput) (string, error)
}

func (m *rewriteServiceMock) Rewrite(ctx context.Context, input wall.RewriteInput) (string, error) {
	return m.rewriteFn(ctx, input)
}

func TestRewrite_Success(t *testing.T) {
	t.Parallel()

	h := NewRewriteHandler(&rewriteServiceMock{
		rewriteFn: func(_ context.Context, input wall.RewriteInput) (string, error) {
			if input.Body != "hi wall" {
				t.Errorf("body = %q, want %q", input.Body, "hi wall")
			}
			return "Greetings, wall!", nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/rewrite",
		strings.NewReader(`{"name":"Ada","body":"hi wall"}`))
	rec := httptest.NewRecorder()
	h.Rewrite(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp rewriteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Body != "Greetings, wall!" {
		t.Errorf("body = %q, want %q", resp.Body, "Greetings, wall!")
	}
}

func TestRewrite_EmptyBodyIs400(t *testing.T) {
	t.Parallel()

	h := NewRewriteHandler(&rewriteServiceMock{
		rewriteFn: func(_ context.Context, _ wall.RewriteInput) (string, error) {
			return "", domain.NewValidationError("body", "required")
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/rewrite", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Rewrite(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRewrite_WebhookDownIs503(t *testing.T) {
	t.Parallel()

	h := NewRewriteHandler(&rewriteServiceMock{
		rewriteFn: func(_ context.Context, _ wall.RewriteInput) (string, error) {
			return "", domain.ErrUnavailable
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/rewrite", strings.NewReader(`{"body":"hi"}`))
	rec := httptest.NewRecorder()
	h.Rewrite(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
