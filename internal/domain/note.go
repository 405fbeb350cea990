package domain

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteColor is the card color tag assigned to a note when it is created.
type NoteColor string

const (
	NoteColorGold  NoteColor = "#FFD700"
	NoteColorCoral NoteColor = "#FF6B6B"
	NoteColorMint  NoteColor = "#A8E6CF"
	NoteColorPeach NoteColor = "#FFD3B6"
	NoteColorLilac NoteColor = "#DCC6E0"
	NoteColorSky   NoteColor = "#AEDFF7"
)

// Palette lists every color a new note may be tagged with.
var Palette = []NoteColor{
	NoteColorGold, NoteColorCoral, NoteColorMint,
	NoteColorPeach, NoteColorLilac, NoteColorSky,
}

func (c NoteColor) String() string { return string(c) }

func (c NoteColor) IsValid() bool {
	switch c {
	case NoteColorGold, NoteColorCoral, NoteColorMint,
		NoteColorPeach, NoteColorLilac, NoteColorSky:
		return true
	}
	return false
}

// RandomColor picks a palette color uniformly at random.
func RandomColor() NoteColor {
	return Palette[rand.IntN(len(Palette))]
}

// Note is one published wall message.
//
// CreatedAt is assigned by the database clock at insert time and doubles as
// the pagination cursor; its precision is microseconds.
type Note struct {
	ID        uuid.UUID
	Name      string
	Company   string
	Email     string
	Body      string
	Likes     int
	Color     NoteColor
	CreatedAt time.Time
}

// Draft is a note as typed by a visitor, before the store has accepted it.
// Signature is never persisted; it only enriches the rewrite request.
type Draft struct {
	Name      string
	Company   string
	Email     string
	Body      string
	Signature string
}

// Validate checks the presence rules shared by every entry point: the four
// core fields are required and the email must contain "@". Deeper checks
// (deliverability, length limits) are deliberately out of scope.
func (d Draft) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(d.Company) == "" {
		errs = append(errs, FieldError{Field: "company", Message: "required"})
	}
	if strings.TrimSpace(d.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(d.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "must contain @"})
	}
	if strings.TrimSpace(d.Body) == "" {
		errs = append(errs, FieldError{Field: "body", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// NotePage is one page of the wall feed, newest first.
//
// HasMore is derived from the page being exactly full, so a final page whose
// size equals the requested limit still reports HasMore=true; callers learn
// the truth on the next (empty) fetch. NextCursor is nil on an empty page.
type NotePage struct {
	Notes      []Note
	NextCursor *time.Time
	HasMore    bool
}
