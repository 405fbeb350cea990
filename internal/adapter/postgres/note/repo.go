// Package note implements the wall note repository using PostgreSQL.
// Queries are built with squirrel and scanned with pgxscan.
package note

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/wall-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

const table = "notes"

// returning lists every column, so write operations hand back the full row.
const returning = "RETURNING id, name, company, email, body, likes, color, created_at"

var columns = []string{"id", "name", "company", "email", "body", "likes", "color", "created_at"}

// builder produces queries with PostgreSQL ($1, $2, …) placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// noteRow mirrors the notes table for pgxscan.
type noteRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Company   string    `db:"company"`
	Email     string    `db:"email"`
	Body      string    `db:"body"`
	Likes     int       `db:"likes"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

func (r noteRow) toDomain() domain.Note {
	return domain.Note{
		ID:        r.ID,
		Name:      r.Name,
		Company:   r.Company,
		Email:     r.Email,
		Body:      r.Body,
		Likes:     r.Likes,
		Color:     domain.NoteColor(r.Color),
		CreatedAt: r.CreatedAt,
	}
}

// Repo provides note persistence backed by PostgreSQL. It owns the wall's
// admission policy: the table never settles above capacity notes.
type Repo struct {
	db       postgres.Querier
	txm      *postgres.TxManager
	capacity int
}

// New creates a new note repository. capacity is the wall admission limit.
func New(db postgres.Querier, txm *postgres.TxManager, capacity int) *Repo {
	return &Repo{db: db, txm: txm, capacity: capacity}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create admits a draft to the wall inside a single transaction: when the
// wall is full, the least-liked (oldest on equal likes) notes are evicted to
// make room, then the note is inserted with likes=0, a random palette color,
// and the database clock as its timestamp. The draft's signature is not
// persisted.
//
// The capacity check runs per transaction under Read Committed, so two
// admissions racing each other can both see a full wall and settle one note
// over; cmd/trim restores the cap offline.
func (r *Repo) Create(ctx context.Context, draft domain.Draft) (domain.Note, error) {
	var created domain.Note

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		count, err := countNotes(ctx, q)
		if err != nil {
			return err
		}

		if overflow := count - r.capacity + 1; overflow > 0 {
			if _, err := evictNotes(ctx, q, overflow); err != nil {
				return err
			}
		}

		id := uuid.New()
		insert := builder.Insert(table).
			Columns("id", "name", "company", "email", "body", "likes", "color").
			Values(id, draft.Name, draft.Company, draft.Email, draft.Body, 0, domain.RandomColor().String()).
			Suffix(returning)

		sqlStr, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		var row noteRow
		if err := pgxscan.Get(ctx, q, &row, sqlStr, args...); err != nil {
			return mapError(err, fmt.Sprintf("note %s", id))
		}

		created = row.toDomain()
		return nil
	})
	if err != nil {
		return domain.Note{}, err
	}

	return created, nil
}

// UpdateLikes overwrites a note's like counter with an absolute value and
// returns the updated note. Two clients that both read likes=N and write N+1
// settle at N+1, not N+2 — the last write wins. IncrementLikes avoids that
// lost update.
// Returns domain.ErrNotFound if the note does not exist and
// domain.ErrValidation for a negative value.
func (r *Repo) UpdateLikes(ctx context.Context, id uuid.UUID, likes int) (domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := builder.Update(table).
		Set("likes", likes).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build update: %w", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, q, &row, sqlStr, args...); err != nil {
		return domain.Note{}, mapError(err, fmt.Sprintf("note %s", id))
	}

	return row.toDomain(), nil
}

// IncrementLikes adds one to a note's like counter in SQL, so concurrent
// likes all land, and returns the updated note.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) IncrementLikes(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := builder.Update(table).
		Set("likes", sq.Expr("likes + 1")).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build update: %w", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, q, &row, sqlStr, args...); err != nil {
		return domain.Note{}, mapError(err, fmt.Sprintf("note %s", id))
	}

	return row.toDomain(), nil
}

// Delete removes a note by ID. Deleting an id that is already gone succeeds:
// the outcome (no such note) holds either way.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := builder.Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := q.Exec(ctx, sqlStr, args...); err != nil {
		return mapError(err, fmt.Sprintf("note %s", id))
	}

	return nil
}

// Trim re-enforces the capacity using the admission eviction order and
// reports how many notes were removed. Used by the offline trim tool after
// concurrent admissions overshoot the cap.
func (r *Repo) Trim(ctx context.Context) (int, error) {
	var evicted int

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		count, err := countNotes(ctx, q)
		if err != nil {
			return err
		}

		overflow := count - r.capacity
		if overflow <= 0 {
			return nil
		}

		n, err := evictNotes(ctx, q, overflow)
		if err != nil {
			return err
		}
		evicted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return evicted, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns one feed page, newest first, resuming strictly after cursor
// when set.
//
// HasMore is true whenever the page came back exactly full, so a final page
// of exactly limit notes still reports more; the follow-up fetch returns an
// empty page. Notes sharing a created_at (microsecond precision) with the
// page boundary are skipped by the strict cursor comparison — accepted as an
// approximation, since the timestamp is assigned by the database clock at
// insert time.
func (r *Repo) List(ctx context.Context, cursor *time.Time, limit int) (domain.NotePage, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sel := builder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if cursor != nil {
		sel = sel.Where(sq.Lt{"created_at": *cursor})
	}

	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return domain.NotePage{}, fmt.Errorf("build list query: %w", err)
	}

	var rows []noteRow
	if err := pgxscan.Select(ctx, q, &rows, sqlStr, args...); err != nil {
		return domain.NotePage{}, mapError(err, "list notes")
	}

	page := domain.NotePage{
		Notes:   make([]domain.Note, 0, len(rows)),
		HasMore: limit > 0 && len(rows) == limit,
	}
	for _, row := range rows {
		page.Notes = append(page.Notes, row.toDomain())
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1].CreatedAt
		page.NextCursor = &last
	}

	return page, nil
}

// Count returns the number of notes currently on the wall.
func (r *Repo) Count(ctx context.Context) (int, error) {
	return countNotes(ctx, postgres.QuerierFromCtx(ctx, r.db))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func countNotes(ctx context.Context, q postgres.Querier) (int, error) {
	sqlStr, args, err := builder.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, mapError(err, "count notes")
	}

	return count, nil
}

// evictNotes removes n notes, least likes first, oldest first on equal likes.
func evictNotes(ctx context.Context, q postgres.Querier, n int) (int, error) {
	sqlStr, args, err := builder.Delete(table).
		Where("id IN (SELECT id FROM notes ORDER BY likes ASC, created_at ASC LIMIT ?)", n).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build evict query: %w", err)
	}

	tag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, mapError(err, "evict notes")
	}

	return int(tag.RowsAffected()), nil
}

// mapError extends postgres.MapError with scany's no-rows error, which
// pgxscan.Get returns instead of pgx.ErrNoRows.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if pgxscan.NotFound(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return postgres.MapError(err, op)
}
