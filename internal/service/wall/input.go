package wall

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

// SubmitInput holds the form fields for a new note. Signature is optional and
// never stored; it only travels with rewrite requests.
type SubmitInput struct {
	Name      string
	Company   string
	Email     string
	Body      string
	Signature string
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	return i.draft().Validate()
}

// draft trims the form fields into a domain.Draft.
func (i SubmitInput) draft() domain.Draft {
	return domain.Draft{
		Name:      strings.TrimSpace(i.Name),
		Company:   strings.TrimSpace(i.Company),
		Email:     strings.TrimSpace(i.Email),
		Body:      strings.TrimSpace(i.Body),
		Signature: strings.TrimSpace(i.Signature),
	}
}

// ListInput holds the parameters for listing a feed page. A nil Cursor means
// the newest page; Limit 0 means the configured default.
type ListInput struct {
	Cursor *time.Time
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 100"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetLikesInput holds the parameters for the absolute likes overwrite.
type SetLikesInput struct {
	NoteID uuid.UUID
	Likes  int
}

// Validate checks all fields and collects all errors.
func (i SetLikesInput) Validate() error {
	var errs []domain.FieldError
	if i.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "note_id", Message: "required"})
	}
	if i.Likes < 0 {
		errs = append(errs, domain.FieldError{Field: "likes", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RewriteInput holds the draft sent to the rewrite webhook. Only the body is
// required; contact fields enrich the request when present.
type RewriteInput struct {
	Name      string
	Company   string
	Email     string
	Body      string
	Signature string
}

// Validate checks all fields and collects all errors.
func (i RewriteInput) Validate() error {
	if strings.TrimSpace(i.Body) == "" {
		return domain.NewValidationError("body", "required")
	}
	return nil
}

// draft trims the rewrite fields into a domain.Draft.
func (i RewriteInput) draft() domain.Draft {
	return domain.Draft{
		Name:      strings.TrimSpace(i.Name),
		Company:   strings.TrimSpace(i.Company),
		Email:     strings.TrimSpace(i.Email),
		Body:      strings.TrimSpace(i.Body),
		Signature: strings.TrimSpace(i.Signature),
	}
}
