package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var snippetColumns = []string{"id", "user_id", "title", "description", "code", "language", "tags", "created_at", "updated_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type SnippetRepository struct {
	pool *pgxpool.Pool
	timeouts
}

func NewSnippetRepository(pool *pgxpool.Pool, timeout time.Duration) *SnippetRepository {
	return &SnippetRepository{pool: pool, timeouts: timeouts{d: timeout}}
}

func (r *SnippetRepository) Create(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query, args, err := psql.Insert("snippets").
		Columns("user_id", "title", "description", "code", "language", "tags").
		Values(s.UserID, s.Title, s.Description, s.Code, s.Language, domain.NormalizeTags(s.Tags)).
		Suffix("RETURNING " + joinColumns(snippetColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert snippet: %w", err)
	}

	created, err := scanSnippet(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, createErr("create snippet", err)
	}
	return created, nil
}

func (r *SnippetRepository) GetByID(ctx context.Context, id, userID string) (*domain.Snippet, error) {
	if !validID(id) {
		return nil, domain.ErrSnippetNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query, args, err := psql.Select(snippetColumns...).
		From("snippets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get snippet: %w", err)
	}

	s, err := scanSnippet(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, domain.ErrSnippetNotFound) {
			return nil, err
		}
		return nil, storeErr("get snippet", err)
	}
	return s, nil
}

func (r *SnippetRepository) List(ctx context.Context, input repository.ListSnippetsInput) ([]*domain.Snippet, int, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where := SnippetFilterCondition(input.UserID, input.Filter)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("snippets").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count snippets: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, storeErr("count snippets", err)
	}

	query, args, err := psql.Select(snippetColumns...).
		From("snippets").
		Where(where).
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(input.Page.Limit)).
		Offset(uint64(input.Page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list snippets: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list snippets", err)
	}
	defer rows.Close()

	snippets := make([]*domain.Snippet, 0, input.Page.Limit)
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, 0, err
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list snippets", err)
	}
	return snippets, total, nil
}

func (r *SnippetRepository) Update(ctx context.Context, id, userID string, upd domain.SnippetUpdate) (*domain.Snippet, error) {
	if !validID(id) {
		return nil, domain.ErrSnippetNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	q := psql.Update("snippets").Set("updated_at", squirrel.Expr("NOW()"))
	if upd.Title != nil {
		q = q.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		q = q.Set("description", *upd.Description)
	}
	if upd.Code != nil {
		q = q.Set("code", *upd.Code)
	}
	if upd.Language != nil {
		q = q.Set("language", *upd.Language)
	}
	if upd.Tags != nil {
		q = q.Set("tags", domain.NormalizeTags(*upd.Tags))
	}

	query, args, err := q.Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(snippetColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update snippet: %w", err)
	}

	s, err := scanSnippet(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, domain.ErrSnippetNotFound) {
			return nil, err
		}
		return nil, storeErr("update snippet", err)
	}
	return s, nil
}

func (r *SnippetRepository) Delete(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return domain.ErrSnippetNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM snippets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete snippet", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSnippetNotFound
	}
	return nil
}

func (r *SnippetRepository) DistinctLanguages(ctx context.Context, userID string) ([]string, error) {
	return r.distinct(ctx, "distinct languages", `
		SELECT DISTINCT language
		FROM   snippets
		WHERE  user_id = $1
		ORDER  BY language`, userID)
}

func (r *SnippetRepository) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	return r.distinct(ctx, "distinct tags", `
		SELECT DISTINCT t.tag
		FROM   snippets s, unnest(s.tags) AS t(tag)
		WHERE  s.user_id = $1
		ORDER  BY t.tag`, userID)
}

func (r *SnippetRepository) distinct(ctx context.Context, op, query, userID string) ([]string, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr(op, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storeErr(op, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// SnippetFilterCondition scopes a listing to userID and applies the optional
// language, tag and search filters. Search text is matched literally.
func SnippetFilterCondition(userID string, f domain.SnippetFilter) squirrel.And {
	cond := squirrel.And{squirrel.Eq{"user_id": userID}}
	if f.Language != "" {
		cond = append(cond, squirrel.Eq{"language": f.Language})
	}
	if f.Tag != "" {
		cond = append(cond, squirrel.Expr("? = ANY(tags)", f.Tag))
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"code": pattern},
			squirrel.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS t(tag) WHERE t.tag ILIKE ?)", pattern),
		})
	}
	return cond
}

func scanSnippet(row rowScanner) (*domain.Snippet, error) {
	var s domain.Snippet
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Description, &s.Code, &s.Language, &s.Tags, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnippetNotFound
		}
		return nil, fmt.Errorf("scan snippet: %w", err)
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
