package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var noteColumns = []string{"id", "user_id", "title", "content", "is_draft", "tags", "created_at", "updated_at"}

type NoteRepository struct {
	pool *pgxpool.Pool
	timeouts
}

func NewNoteRepository(pool *pgxpool.Pool, timeout time.Duration) *NoteRepository {
	return &NoteRepository{pool: pool, timeouts: timeouts{d: timeout}}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query, args, err := psql.Insert("notes").
		Columns("user_id", "title", "content", "is_draft", "tags").
		Values(note.UserID, note.Title, note.Content, note.IsDraft, domain.NormalizeTags(note.Tags)).
		Suffix("RETURNING " + joinColumns(noteColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert note: %w", err)
	}

	created, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, createErr("create note", err)
	}
	return created, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	if !validID(id) {
		return nil, domain.ErrNoteNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query, args, err := psql.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get note: %w", err)
	}

	n, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, err
		}
		return nil, storeErr("get note", err)
	}
	return n, nil
}

func (r *NoteRepository) List(ctx context.Context, input repository.ListNotesInput) ([]*domain.Note, int, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	owner := squirrel.Eq{"user_id": input.UserID}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("notes").Where(owner).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count notes: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, storeErr("count notes", err)
	}

	query, args, err := psql.Select(noteColumns...).
		From("notes").
		Where(owner).
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(input.Page.Limit)).
		Offset(uint64(input.Page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notes: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list notes", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0, input.Page.Limit)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list notes", err)
	}
	return notes, total, nil
}

func (r *NoteRepository) Update(ctx context.Context, id, userID string, upd domain.NoteUpdate) (*domain.Note, error) {
	if !validID(id) {
		return nil, domain.ErrNoteNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query, args, err := NoteUpdateQuery(id, userID, upd).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update note: %w", err)
	}

	n, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, err
		}
		return nil, storeErr("update note", err)
	}
	return n, nil
}

func (r *NoteRepository) MarkSaved(ctx context.Context, id, userID string) (*domain.Note, error) {
	saved := false
	return r.Update(ctx, id, userID, domain.NoteUpdate{IsDraft: &saved})
}

func (r *NoteRepository) Delete(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return domain.ErrNoteNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete note", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// NoteUpdateQuery sets only the provided fields. updated_at is always refreshed.
func NoteUpdateQuery(id, userID string, upd domain.NoteUpdate) squirrel.UpdateBuilder {
	q := psql.Update("notes").Set("updated_at", squirrel.Expr("NOW()"))
	if upd.Title != nil {
		q = q.Set("title", *upd.Title)
	}
	if upd.Content != nil {
		q = q.Set("content", *upd.Content)
	}
	if upd.IsDraft != nil {
		q = q.Set("is_draft", *upd.IsDraft)
	}
	if upd.Tags != nil {
		q = q.Set("tags", domain.NormalizeTags(*upd.Tags))
	}
	return q.Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(noteColumns))
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.IsDraft, &n.Tags, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}
