package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wall-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedNote inserts a note row with the given likes and created_at, filling
// the remaining fields with unique throwaway values. Returns the note as
// stored.
func SeedNote(t *testing.T, pool *pgxpool.Pool, likes int, createdAt time.Time) domain.Note {
	t.Helper()

	suffix := uniqueSuffix()
	n := domain.Note{
		ID:        uuid.New(),
		Name:      "Visitor " + suffix,
		Company:   "Company " + suffix,
		Email:     "visitor-" + suffix + "@example.com",
		Body:      "seeded note " + suffix,
		Likes:     likes,
		Color:     domain.NoteColorGold,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO notes (id, name, company, email, body, likes, color, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.Name, n.Company, n.Email, n.Body, n.Likes, n.Color.String(), n.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert: %v", err)
	}

	return n
}

// SeedWall fills the notes table with count notes spaced one second apart,
// oldest first, all with zero likes. Returns the notes in insertion order.
func SeedWall(t *testing.T, pool *pgxpool.Pool, count int) []domain.Note {
	t.Helper()

	base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Duration(count) * time.Second)
	notes := make([]domain.Note, 0, count)
	for i := 0; i < count; i++ {
		notes = append(notes, SeedNote(t, pool, 0, base.Add(time.Duration(i)*time.Second)))
	}
	return notes
}

// TruncateNotes empties the notes table. Tests sharing the container
// database call this first for a clean slate.
func TruncateNotes(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `TRUNCATE notes`); err != nil {
		t.Fatalf("testhelper: truncate notes: %v", err)
	}
}
